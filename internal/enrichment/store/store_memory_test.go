package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodhound/internal/enrichment/models"
	"bloodhound/internal/registry"
)

func testSnapshot(gstin string) *models.Snapshot {
	return &models.Snapshot{
		GSTIN: gstin,
		PAN:   "ABCDE1234F",
		GSTN:  &registry.GSTNRecord{GSTIN: gstin, Status: "Active"},
		Sources: map[registry.Source]models.SourceOutcome{
			registry.SourceGSTN: {OK: true},
		},
		FetchedAt: time.Now().UTC(),
	}
}

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Find for missing GSTIN returns ErrNotFound", func(t *testing.T) {
		cache := NewInMemoryCache(time.Minute)
		_, err := cache.Find(ctx, "29ABCDE1234F1Z5")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Save then Find round-trips the snapshot", func(t *testing.T) {
		cache := NewInMemoryCache(time.Minute)
		snapshot := testSnapshot("29ABCDE1234F1Z5")
		require.NoError(t, cache.Save(ctx, snapshot))

		found, err := cache.Find(ctx, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.Equal(t, snapshot.GSTIN, found.GSTIN)
		assert.Equal(t, snapshot.GSTN.Status, found.GSTN.Status)
	})

	t.Run("Find after TTL expiry returns ErrNotFound", func(t *testing.T) {
		cache := NewInMemoryCache(time.Nanosecond)
		require.NoError(t, cache.Save(ctx, testSnapshot("29ABCDE1234F1Z5")))

		time.Sleep(time.Millisecond)
		_, err := cache.Find(ctx, "29ABCDE1234F1Z5")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("nil snapshot Save is a no-op", func(t *testing.T) {
		cache := NewInMemoryCache(time.Minute)
		require.NoError(t, cache.Save(ctx, nil))
	})

	t.Run("cached copy is isolated from caller mutation", func(t *testing.T) {
		cache := NewInMemoryCache(time.Minute)
		snapshot := testSnapshot("29ABCDE1234F1Z5")
		require.NoError(t, cache.Save(ctx, snapshot))

		snapshot.GSTIN = "mutated"
		found, err := cache.Find(ctx, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.Equal(t, "29ABCDE1234F1Z5", found.GSTIN)
	})
}
