// Package store provides the vendor persistence implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
)

// InMemoryStore keeps vendor records per entity. Suitable for tests and
// single-node deployments.
type InMemoryStore struct {
	mu      sync.RWMutex
	vendors map[id.EntityID]map[string]vendor.Vendor
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{vendors: make(map[id.EntityID]map[string]vendor.Vendor)}
}

func (s *InMemoryStore) Upsert(_ context.Context, record *vendor.Vendor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byGSTIN, ok := s.vendors[record.EntityID]
	if !ok {
		byGSTIN = make(map[string]vendor.Vendor)
		s.vendors[record.EntityID] = byGSTIN
	}
	stored := *record
	stored.RiskFactors = append([]string(nil), record.RiskFactors...)
	byGSTIN[record.GSTIN] = stored
	return nil
}

func (s *InMemoryStore) FindByGSTIN(_ context.Context, entityID id.EntityID, gstin string) (*vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.vendors[entityID][gstin]; ok {
		found := record
		found.RiskFactors = append([]string(nil), record.RiskFactors...)
		return &found, nil
	}
	return nil, vendor.ErrNotFound
}

func (s *InMemoryStore) ListByEntity(_ context.Context, entityID id.EntityID) ([]vendor.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]vendor.Vendor, 0, len(s.vendors[entityID]))
	for _, record := range s.vendors[entityID] {
		record.RiskFactors = append([]string(nil), record.RiskFactors...)
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].RiskScore != records[j].RiskScore {
			return records[i].RiskScore > records[j].RiskScore
		}
		return records[i].Name < records[j].Name
	})
	return records, nil
}

func (s *InMemoryStore) SetWatchlist(_ context.Context, entityID id.EntityID, vendorID id.VendorID, watchlisted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for gstin, record := range s.vendors[entityID] {
		if record.ID == vendorID {
			record.Watchlisted = watchlisted
			s.vendors[entityID][gstin] = record
			return nil
		}
	}
	return vendor.ErrNotFound
}
