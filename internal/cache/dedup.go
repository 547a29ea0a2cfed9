package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "webhook:event:"

// WebhookDedup remembers processed webhook event ids so processor
// redeliveries are dropped.
type WebhookDedup struct {
	client redis.UniversalClient
}

func NewWebhookDedup(client redis.UniversalClient) *WebhookDedup {
	return &WebhookDedup{client: client}
}

// FirstSeen reports whether this event id has not been processed yet,
// atomically claiming it for the given retention window.
func (d *WebhookDedup) FirstSeen(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	return d.client.SetNX(ctx, dedupKeyPrefix+eventID, 1, ttl).Result()
}

// Forget releases a claimed event id so a later delivery is processed again.
func (d *WebhookDedup) Forget(ctx context.Context, eventID string) error {
	return d.client.Del(ctx, dedupKeyPrefix+eventID).Err()
}
