// Package store provides user store implementations.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"bloodhound/internal/auth"
	id "bloodhound/pkg/domain"
)

// InMemoryStore keeps users in memory, keyed by lowercased email.
// Suitable for tests and single-process deployments.
type InMemoryStore struct {
	mu      sync.RWMutex
	byEmail map[string]auth.User
}

// NewInMemoryStore creates an empty in-memory user store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byEmail: make(map[string]auth.User),
	}
}

// Create stores a new user, rejecting duplicate emails.
func (s *InMemoryStore) Create(_ context.Context, user auth.User) error {
	key := strings.ToLower(user.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[key]; exists {
		return auth.ErrEmailTaken
	}
	s.byEmail[key] = user
	return nil
}

// FindByEmail looks up a user by email, case-insensitively.
func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.byEmail[strings.ToLower(email)]
	if !exists {
		return auth.User{}, auth.ErrNotFound
	}
	return user, nil
}

// RecordLogin stamps the user's last login time.
func (s *InMemoryStore) RecordLogin(_ context.Context, userID id.UserID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, user := range s.byEmail {
		if user.ID == userID {
			user.LastLoginAt = at
			s.byEmail[key] = user
			return nil
		}
	}
	return auth.ErrNotFound
}
