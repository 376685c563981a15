package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bloodhound/internal/enrichment/models"
)

const snapshotKeyPrefix = "enrichment:snapshot:"

// RedisCache is a Redis-backed snapshot cache for distributed deployments
// where multiple instances should share registry lookups.
type RedisCache struct {
	client   *redis.Client
	cacheTTL time.Duration
}

// NewRedisCache constructs a Redis-backed snapshot cache with the specified TTL.
func NewRedisCache(client *redis.Client, cacheTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, cacheTTL: cacheTTL}
}

// Save stores a snapshot as JSON under its GSTIN key with the cache TTL.
// If snapshot is nil, the operation is a no-op and returns nil.
func (c *RedisCache) Save(ctx context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKeyPrefix+snapshot.GSTIN, payload, c.cacheTTL).Err()
}

// Find retrieves a cached snapshot by GSTIN.
// Returns ErrNotFound if the key does not exist or has expired.
func (c *RedisCache) Find(ctx context.Context, gstin string) (*models.Snapshot, error) {
	payload, err := c.client.Get(ctx, snapshotKeyPrefix+gstin).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snapshot models.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}
