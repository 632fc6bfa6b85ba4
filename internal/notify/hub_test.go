package notify

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, id string, userID int) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Send:   make(chan []byte, 4),
		Hub:    hub,
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, "client-1", 1)
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, []byte("hello"))

	select {
	case data := <-client.Send:
		assert.Equal(t, "hello", string(data))
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for broadcast")
	}
}

func TestHub_BroadcastIsScopedToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	owner := newTestClient(hub, "client-1", 1)
	other := newTestClient(hub, "client-2", 2)
	hub.register <- owner
	hub.register <- other

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 1 && hub.UserClientCount(2) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, []byte("private"))

	select {
	case data := <-owner.Send:
		assert.Equal(t, "private", string(data))
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for broadcast")
	}

	select {
	case data := <-other.Send:
		t.Fatalf("Other user's client received %q", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, "client-1", 1)
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 0
	}, time.Second, 10*time.Millisecond)

	// Send is closed on unregister.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHub_EvictsSlowClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Unbuffered Send with no reader: the first broadcast cannot be
	// delivered and must evict the client instead of blocking the hub.
	slow := &Client{ID: "slow", UserID: 1, Send: make(chan []byte), Hub: hub}
	hub.register <- slow

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, []byte("dropped"))

	require.Eventually(t, func() bool {
		return hub.UserClientCount(1) == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-slow.Send
	assert.False(t, open)
}

func TestBroadcaster_DocumentChanged(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient(hub, "client-1", 7)
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.UserClientCount(7) == 1
	}, time.Second, 10*time.Millisecond)

	broadcaster := NewBroadcaster(hub, nil)
	broadcaster.DocumentChanged(7, "updated", "doc-1")

	select {
	case data := <-client.Send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "updated", event.Action)
		assert.Equal(t, "doc-1", event.DocumentID)
		assert.NotZero(t, event.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for change event")
	}
}
