package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"bloodhound/internal/enrichment/models"
)

// ErrNotFound is returned when a requested snapshot does not exist in the cache.
var ErrNotFound = errors.New("not found")

type cachedSnapshot struct {
	snapshot models.Snapshot
	storedAt time.Time
}

// InMemoryCache provides an in-memory snapshot cache with TTL expiration.
type InMemoryCache struct {
	mu        sync.RWMutex
	snapshots map[string]cachedSnapshot
	cacheTTL  time.Duration
}

// NewInMemoryCache creates a new in-memory cache with the specified TTL.
func NewInMemoryCache(cacheTTL time.Duration) *InMemoryCache {
	return &InMemoryCache{
		snapshots: make(map[string]cachedSnapshot),
		cacheTTL:  cacheTTL,
	}
}

// Save stores a snapshot in the cache, keyed by GSTIN.
// If snapshot is nil, the operation is a no-op and returns nil.
func (c *InMemoryCache) Save(_ context.Context, snapshot *models.Snapshot) error {
	if snapshot == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[snapshot.GSTIN] = cachedSnapshot{snapshot: *snapshot, storedAt: time.Now()}
	return nil
}

// Find retrieves a cached snapshot by GSTIN.
// Returns ErrNotFound if the snapshot does not exist or has expired past the cache TTL.
func (c *InMemoryCache) Find(_ context.Context, gstin string) (*models.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.snapshots[gstin]; ok {
		if time.Since(cached.storedAt) < c.cacheTTL {
			return &cached.snapshot, nil
		}
	}
	return nil, ErrNotFound
}
