package repository

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recovglox/recovglox-backend/internal/notifications/domain"
)

const feedKeyPrefix = "notif:feed:" // notif:feed:{recipient_id}

// FeedCache keeps the rendered notification feed of a physiotherapist in
// Redis. It is strictly best-effort: every cache failure degrades to the
// store read and is only logged.
type FeedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFeedCache(client *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{client: client, ttl: ttl}
}

func (c *FeedCache) Get(ctx context.Context, recipientID string) ([]domain.Notification, bool) {
	data, err := c.client.Get(ctx, feedKeyPrefix+recipientID).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("notification cache get: %v", err)
		return nil, false
	}

	var items []domain.Notification
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		log.Printf("notification cache decode: %v", err)
		return nil, false
	}
	return items, true
}

func (c *FeedCache) Set(ctx context.Context, recipientID string, items []domain.Notification) {
	data, err := json.Marshal(items)
	if err != nil {
		log.Printf("notification cache encode: %v", err)
		return
	}
	if err := c.client.Set(ctx, feedKeyPrefix+recipientID, data, c.ttl).Err(); err != nil {
		log.Printf("notification cache set: %v", err)
	}
}

func (c *FeedCache) Invalidate(ctx context.Context, recipientID string) {
	if err := c.client.Del(ctx, feedKeyPrefix+recipientID).Err(); err != nil {
		log.Printf("notification cache invalidate: %v", err)
	}
}
