package notify

import (
	"encoding/json"
	"log"
	"time"
)

// Broadcaster implements the document handler's Notifier. With redis
// configured, events travel through pub/sub so all instances see them;
// without it they go straight to the local hub.
type Broadcaster struct {
	hub   *Hub
	redis *RedisService
}

func NewBroadcaster(hub *Hub, redis *RedisService) *Broadcaster {
	return &Broadcaster{hub: hub, redis: redis}
}

func (b *Broadcaster) DocumentChanged(ownerID int, action string, documentID string) {
	event := Event{
		Action:     action,
		DocumentID: documentID,
		Timestamp:  time.Now().Unix(),
	}

	if b.redis != nil {
		if err := b.redis.Publish(ownerID, event); err != nil {
			log.Printf("Failed to publish change event: %v", err)
		}
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal change event: %v", err)
		return
	}
	b.hub.Broadcast(ownerID, data)
}
