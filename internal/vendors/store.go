package vendor

import (
	"context"
	"errors"

	id "bloodhound/pkg/domain"
)

// ErrNotFound is returned when a requested vendor does not exist in the store.
var ErrNotFound = errors.New("vendor not found")

// Store is the entity-scoped persistence contract for vendor records.
// Implementations live in the store subpackage.
type Store interface {
	// Upsert inserts or replaces the record identified by (EntityID, GSTIN).
	Upsert(ctx context.Context, vendor *Vendor) error

	// FindByGSTIN returns the vendor for one entity, or ErrNotFound.
	FindByGSTIN(ctx context.Context, entityID id.EntityID, gstin string) (*Vendor, error)

	// ListByEntity returns all of an entity's vendors ordered by risk score
	// descending, then name.
	ListByEntity(ctx context.Context, entityID id.EntityID) ([]Vendor, error)

	// SetWatchlist flips the watchlist flag, or returns ErrNotFound.
	SetWatchlist(ctx context.Context, entityID id.EntityID, vendorID id.VendorID, watchlisted bool) error
}
