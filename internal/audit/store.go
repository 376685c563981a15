package audit

import (
	"context"
	"sync"

	id "bloodhound/pkg/domain"
)

// Store is the append-only persistence contract for the audit trail.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEntity(ctx context.Context, entityID id.EntityID) ([]Event, error)
}

// InMemoryStore keeps events per entity. Suitable for tests and single-node
// deployments.
type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.EntityID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.EntityID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.EntityID] = append(s.events[event.EntityID], event)
	return nil
}

func (s *InMemoryStore) ListByEntity(_ context.Context, entityID id.EntityID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[entityID]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.EntityID][]Event)
}

// ChannelStore decouples event producers from the durable store. Append hands
// the event to a Worker via the inbox; reads go straight to the backing store.
type ChannelStore struct {
	backing Store
	inbox   chan Event
}

// NewChannelStore wraps a durable store with a buffered inbox. The returned
// channel feeds a Worker running Run in the background.
func NewChannelStore(backing Store, buffer int) (*ChannelStore, <-chan Event) {
	s := &ChannelStore{
		backing: backing,
		inbox:   make(chan Event, buffer),
	}
	return s, s.inbox
}

func (s *ChannelStore) Append(ctx context.Context, event Event) error {
	select {
	case s.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ChannelStore) ListByEntity(ctx context.Context, entityID id.EntityID) ([]Event, error) {
	return s.backing.ListByEntity(ctx, entityID)
}
