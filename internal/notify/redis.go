package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "user:"

// RedisService relays document change events through redis pub/sub so every
// server instance can deliver them to its own websocket clients.
type RedisService struct {
	client *redis.Client
	hub    *Hub
	ctx    context.Context
}

func NewRedisService(redisURL string, hub *Hub) (*RedisService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis url parse error: %v", err)
	}

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping error: %v", err)
	}

	return &RedisService{
		client: client,
		hub:    hub,
		ctx:    ctx,
	}, nil
}

func (r *RedisService) StartSubscription() {
	pubsub := r.client.PSubscribe(r.ctx, channelPrefix+"*")
	defer pubsub.Close()

	log.Println("Redis subscription started")

	ch := pubsub.Channel()
	for msg := range ch {
		r.handleRedisMessage(msg)
	}
}

func (r *RedisService) Publish(userID int, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	channel := fmt.Sprintf("%s%d", channelPrefix, userID)
	return r.client.Publish(r.ctx, channel, data).Err()
}

func (r *RedisService) handleRedisMessage(msg *redis.Message) {
	userID, err := strconv.Atoi(strings.TrimPrefix(msg.Channel, channelPrefix))
	if err != nil {
		log.Printf("Ignoring redis message on unexpected channel %q", msg.Channel)
		return
	}

	if r.hub.UserClientCount(userID) > 0 {
		r.hub.Broadcast(userID, []byte(msg.Payload))
	}
}

func (r *RedisService) Close() error {
	return r.client.Close()
}
