package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pravinkumar0908/trip-bus-sub002/internal/models"
)

const refKeyPrefix = "operator_ref:"

// IdentityCache holds the last-resolved operator reference per session.
// It is read at screen startup and rewritten after every successful
// resolution; a cache miss or decode failure is never fatal, the
// resolver just starts from the session claims instead.
type IdentityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdentityCache creates a new IdentityCache
func NewIdentityCache(client *redis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{client: client, ttl: ttl}
}

// GetRef retrieves the cached operator reference for a session.
// Returns (nil, nil) on a cache miss.
func (c *IdentityCache) GetRef(ctx context.Context, sessionKey string) (*models.LocalOperatorRef, error) {
	data, err := c.client.Get(ctx, refKeyPrefix+sessionKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("identity cache get: %w", err)
	}

	ref := &models.LocalOperatorRef{}
	if err := json.Unmarshal(data, ref); err != nil {
		// A corrupt entry behaves like a miss; the next resolution rewrites it.
		return nil, nil
	}

	return ref, nil
}

// SetRef stores the operator reference for a session
func (c *IdentityCache) SetRef(ctx context.Context, sessionKey string, ref *models.LocalOperatorRef) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("identity cache marshal: %w", err)
	}

	if err := c.client.Set(ctx, refKeyPrefix+sessionKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("identity cache set: %w", err)
	}

	return nil
}

// Clear removes the cached reference for a session
func (c *IdentityCache) Clear(ctx context.Context, sessionKey string) error {
	return c.client.Del(ctx, refKeyPrefix+sessionKey).Err()
}
