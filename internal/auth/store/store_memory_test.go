package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodhound/internal/auth"
	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

func testUser(email string) auth.User {
	return auth.User{
		ID:           id.NewUserID(),
		EntityID:     id.NewEntityID(),
		Email:        email,
		FullName:     "Priya Sharma",
		PasswordHash: "$2a$10$fakehashfortestingonly",
		Role:         requestcontext.RoleClient,
		CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("find on empty store returns ErrNotFound", func(t *testing.T) {
		s := NewInMemoryStore()
		_, err := s.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("create then find round-trips", func(t *testing.T) {
		s := NewInMemoryStore()
		user := testUser("priya@example.com")
		require.NoError(t, s.Create(ctx, user))

		found, err := s.FindByEmail(ctx, "priya@example.com")
		require.NoError(t, err)
		assert.Equal(t, user, found)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Create(ctx, testUser("priya@example.com")))

		_, err := s.FindByEmail(ctx, "PRIYA@Example.COM")
		assert.NoError(t, err)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		s := NewInMemoryStore()
		require.NoError(t, s.Create(ctx, testUser("priya@example.com")))

		err := s.Create(ctx, testUser("Priya@Example.com"))
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("record login stamps last login", func(t *testing.T) {
		s := NewInMemoryStore()
		user := testUser("priya@example.com")
		require.NoError(t, s.Create(ctx, user))

		loginAt := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
		require.NoError(t, s.RecordLogin(ctx, user.ID, loginAt))

		found, err := s.FindByEmail(ctx, user.Email)
		require.NoError(t, err)
		assert.Equal(t, loginAt, found.LastLoginAt)
	})

	t.Run("record login for unknown user returns ErrNotFound", func(t *testing.T) {
		s := NewInMemoryStore()
		err := s.RecordLogin(ctx, id.NewUserID(), time.Now())
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}
