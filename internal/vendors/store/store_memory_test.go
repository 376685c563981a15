package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodhound/internal/risk"
	"bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
)

func testVendor(entityID id.EntityID, gstin, name string, score int) *vendor.Vendor {
	return &vendor.Vendor{
		ID:             id.NewVendorID(),
		EntityID:       entityID,
		Name:           name,
		GSTIN:          gstin,
		PAN:            id.ExtractPAN(gstin),
		RiskScore:      score,
		RiskTier:       risk.TierFor(score),
		RiskFactors:    []string{"factor"},
		LastAnalyzedAt: time.Now().UTC(),
		CreatedAt:      time.Now().UTC(),
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("FindByGSTIN for missing vendor returns ErrNotFound", func(t *testing.T) {
		s := NewInMemoryStore()
		_, err := s.FindByGSTIN(ctx, id.NewEntityID(), "29ABCDE1234F1Z5")
		assert.ErrorIs(t, err, vendor.ErrNotFound)
	})

	t.Run("Upsert then FindByGSTIN round-trips", func(t *testing.T) {
		s := NewInMemoryStore()
		entityID := id.NewEntityID()
		record := testVendor(entityID, "29ABCDE1234F1Z5", "Acme Traders", 55)
		require.NoError(t, s.Upsert(ctx, record))

		found, err := s.FindByGSTIN(ctx, entityID, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.Equal(t, record.ID, found.ID)
		assert.Equal(t, "Acme Traders", found.Name)
		assert.Equal(t, risk.TierMedium, found.RiskTier)
	})

	t.Run("Upsert replaces by entity and GSTIN", func(t *testing.T) {
		s := NewInMemoryStore()
		entityID := id.NewEntityID()
		record := testVendor(entityID, "29ABCDE1234F1Z5", "Acme Traders", 55)
		require.NoError(t, s.Upsert(ctx, record))

		record.RiskScore = 95
		record.RiskTier = risk.TierCritical
		require.NoError(t, s.Upsert(ctx, record))

		records, err := s.ListByEntity(ctx, entityID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 95, records[0].RiskScore)
	})

	t.Run("vendors are entity scoped", func(t *testing.T) {
		s := NewInMemoryStore()
		entityA, entityB := id.NewEntityID(), id.NewEntityID()
		require.NoError(t, s.Upsert(ctx, testVendor(entityA, "29ABCDE1234F1Z5", "A", 10)))

		_, err := s.FindByGSTIN(ctx, entityB, "29ABCDE1234F1Z5")
		assert.ErrorIs(t, err, vendor.ErrNotFound)

		records, err := s.ListByEntity(ctx, entityB)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("ListByEntity orders by score descending then name", func(t *testing.T) {
		s := NewInMemoryStore()
		entityID := id.NewEntityID()
		require.NoError(t, s.Upsert(ctx, testVendor(entityID, "29AAAAA1111A1Z1", "Zeta", 40)))
		require.NoError(t, s.Upsert(ctx, testVendor(entityID, "29BBBBB2222B1Z2", "Alpha", 90)))
		require.NoError(t, s.Upsert(ctx, testVendor(entityID, "29CCCCC3333C1Z3", "Beta", 40)))

		records, err := s.ListByEntity(ctx, entityID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Alpha", records[0].Name)
		assert.Equal(t, "Beta", records[1].Name)
		assert.Equal(t, "Zeta", records[2].Name)
	})

	t.Run("SetWatchlist flips flag and scopes by entity", func(t *testing.T) {
		s := NewInMemoryStore()
		entityID := id.NewEntityID()
		record := testVendor(entityID, "29ABCDE1234F1Z5", "Acme", 10)
		require.NoError(t, s.Upsert(ctx, record))

		require.NoError(t, s.SetWatchlist(ctx, entityID, record.ID, true))
		found, err := s.FindByGSTIN(ctx, entityID, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.True(t, found.Watchlisted)

		err = s.SetWatchlist(ctx, id.NewEntityID(), record.ID, false)
		assert.ErrorIs(t, err, vendor.ErrNotFound)
	})

	t.Run("stored copy is isolated from caller mutation", func(t *testing.T) {
		s := NewInMemoryStore()
		entityID := id.NewEntityID()
		record := testVendor(entityID, "29ABCDE1234F1Z5", "Acme", 10)
		require.NoError(t, s.Upsert(ctx, record))

		record.RiskFactors[0] = "mutated"
		found, err := s.FindByGSTIN(ctx, entityID, "29ABCDE1234F1Z5")
		require.NoError(t, err)
		assert.Equal(t, []string{"factor"}, found.RiskFactors)
	})
}
