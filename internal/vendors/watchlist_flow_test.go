package vendor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodhound/internal/audit"
	. "bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
	"bloodhound/pkg/testutil"
)

// Covers the full accountant flow: evaluate a vendor, flag it, and see the
// flag reflected in the entity listing and the audit trail.
func TestWatchlistFlow(t *testing.T) {
	f := newFixture(t, stubEnricher{snapshot: cleanSnapshot()})
	var vendorID id.VendorID

	testutil.Given(t, "an evaluated vendor", func(t *testing.T) {
		assessment, err := f.service.Evaluate(f.ctx, EvaluateRequest{GSTIN: testGSTIN, Name: "Acme Traders"})
		require.NoError(t, err)
		vendorID = assessment.VendorID
	})

	testutil.When(t, "the vendor is placed on the watchlist", func(t *testing.T) {
		require.NoError(t, f.service.SetWatchlist(f.ctx, vendorID, true))
	})

	testutil.Then(t, "the listing shows the flag", func(t *testing.T) {
		records, err := f.service.List(f.ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, vendorID, records[0].ID)
		assert.True(t, records[0].Watchlisted)
	})

	testutil.Then(t, "the audit trail records both actions", func(t *testing.T) {
		events, err := f.auditStore.ListByEntity(f.ctx, f.entityID)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, audit.ActionVendorEvaluated, events[0].Action)
		assert.Equal(t, audit.ActionVendorWatchlisted, events[1].Action)
	})

	testutil.When(t, "the flag is cleared", func(t *testing.T) {
		require.NoError(t, f.service.SetWatchlist(f.ctx, vendorID, false))
	})

	testutil.Then(t, "the listing and trail reflect the removal", func(t *testing.T) {
		records, err := f.service.List(f.ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.False(t, records[0].Watchlisted)

		events, err := f.auditStore.ListByEntity(f.ctx, f.entityID)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, audit.ActionVendorUnwatchlisted, events[2].Action)
	})
}
