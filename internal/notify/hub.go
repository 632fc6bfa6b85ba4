package notify

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event describes one document change delivered to the owner's connected
// clients.
type Event struct {
	Action     string `json:"action"`
	DocumentID string `json:"document_id"`
	Timestamp  int64  `json:"timestamp"`
}

type Client struct {
	ID     string
	UserID int
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

type message struct {
	userID int
	data   []byte
}

// Hub tracks connected clients per user and fans document change events out
// to them.
type Hub struct {
	clients    map[int]map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastToUser(msg.userID, msg.data)
		}
	}
}

// Broadcast sends data to every connected client of the given user.
func (h *Hub) Broadcast(userID int, data []byte) {
	h.broadcast <- message{userID: userID, data: data}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[string]*Client)
	}
	h.clients[client.UserID][client.ID] = client

	log.Printf("Client %s connected for user %d. Total clients: %d",
		client.ID, client.UserID, len(h.clients[client.UserID]))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clients, exists := h.clients[client.UserID]
	if !exists {
		return
	}
	if _, exists := clients[client.ID]; !exists {
		return
	}

	delete(clients, client.ID)
	close(client.Send)

	log.Printf("Client %s disconnected for user %d. Remaining clients: %d",
		client.ID, client.UserID, len(clients))

	if len(clients) == 0 {
		delete(h.clients, client.UserID)
	}
}

func (h *Hub) broadcastToUser(userID int, data []byte) {
	// Eviction mutates the clients map, and UserClientCount reads it from
	// the redis subscription goroutine, so this needs the write lock.
	h.mutex.Lock()
	defer h.mutex.Unlock()

	clients := h.clients[userID]
	for clientId, client := range clients {
		select {
		case client.Send <- data:
		default:
			close(client.Send)
			delete(clients, clientId)
		}
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) UserClientCount(userID int) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
