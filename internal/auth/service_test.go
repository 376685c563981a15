package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodhound/internal/audit"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/requestcontext"
)

type stubIssuer struct {
	token    string
	err      error
	gotUser  uuid.UUID
	gotScope uuid.UUID
	gotRole  string
	gotTTL   time.Duration
}

func (s *stubIssuer) GenerateAccessToken(userID uuid.UUID, entityID uuid.UUID, role string, expiresIn time.Duration) (string, error) {
	s.gotUser = userID
	s.gotScope = entityID
	s.gotRole = role
	s.gotTTL = expiresIn
	return s.token, s.err
}

type memoryUserStore struct {
	users map[string]User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]User)}
}

func (m *memoryUserStore) Create(_ context.Context, user User) error {
	if _, exists := m.users[user.Email]; exists {
		return ErrEmailTaken
	}
	m.users[user.Email] = user
	return nil
}

func (m *memoryUserStore) FindByEmail(_ context.Context, email string) (User, error) {
	user, exists := m.users[email]
	if !exists {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (m *memoryUserStore) RecordLogin(_ context.Context, userID id.UserID, at time.Time) error {
	for email, user := range m.users {
		if user.ID == userID {
			user.LastLoginAt = at
			m.users[email] = user
			return nil
		}
	}
	return ErrNotFound
}

type authFixture struct {
	service *Service
	store   *memoryUserStore
	issuer  *stubIssuer
	audits  *audit.InMemoryStore
	ctx     context.Context
	now     time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userStore := newMemoryUserStore()
	issuer := &stubIssuer{token: "signed.jwt.token"}
	auditStore := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(auditStore, audit.WithLogger(logger))

	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	return &authFixture{
		service: NewService(userStore, issuer, publisher, logger),
		store:   userStore,
		issuer:  issuer,
		audits:  auditStore,
		ctx:     ctx,
		now:     now,
	}
}

func (f *authFixture) register(t *testing.T, email, password string, role requestcontext.UserRole) *User {
	t.Helper()
	user, err := f.service.Register(f.ctx, RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Priya Sharma",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestService_Register(t *testing.T) {
	t.Run("clients get a fresh entity scope", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		assert.False(t, user.EntityID.IsNil())
		assert.Equal(t, "priya@example.com", user.Email)
		assert.Equal(t, f.now, user.CreatedAt)
	})

	t.Run("accountants carry no entity scope", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "ca@example.com", "s3cret-password", requestcontext.RoleAccountant)
		assert.True(t, user.EntityID.IsNil())
	})

	t.Run("email is normalized to lower case", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "  Priya@Example.COM ", "s3cret-password", requestcontext.RoleClient)
		assert.Equal(t, "priya@example.com", user.Email)
	})

	t.Run("missing full name is derived from the email", func(t *testing.T) {
		f := newAuthFixture(t)
		user, err := f.service.Register(f.ctx, RegisterRequest{
			Email:    "anil.kumar@example.com",
			Password: "s3cret-password",
			Role:     requestcontext.RoleClient,
		})
		require.NoError(t, err)
		assert.Equal(t, "Anil Kumar", user.FullName)
	})

	t.Run("password is stored hashed", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		assert.NotEqual(t, "s3cret-password", user.PasswordHash)
		assert.True(t, VerifyPassword("s3cret-password", user.PasswordHash))
		assert.False(t, VerifyPassword("wrong-password", user.PasswordHash))
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		_, err := f.service.Register(f.ctx, RegisterRequest{
			Email:    "Priya@example.com",
			Password: "another-password",
			Role:     requestcontext.RoleClient,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("short password is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.service.Register(f.ctx, RegisterRequest{
			Email:    "priya@example.com",
			Password: "short",
			Role:     requestcontext.RoleClient,
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("invalid role is rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.service.Register(f.ctx, RegisterRequest{
			Email:    "priya@example.com",
			Password: "s3cret-password",
			Role:     "superuser",
		})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestService_Login(t *testing.T) {
	t.Run("valid credentials issue a token", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		pair, err := f.service.Login(f.ctx, "Priya@Example.com", "s3cret-password")
		require.NoError(t, err)

		assert.Equal(t, "signed.jwt.token", pair.AccessToken)
		assert.Equal(t, "Bearer", pair.TokenType)
		assert.Equal(t, int64(3600), pair.ExpiresIn)
		assert.Equal(t, requestcontext.RoleClient, pair.Role)
		assert.Equal(t, user.ID, pair.UserID)
		assert.Equal(t, user.EntityID, pair.EntityID)

		assert.Equal(t, uuid.UUID(user.ID), f.issuer.gotUser)
		assert.Equal(t, "client", f.issuer.gotRole)
		assert.Equal(t, DefaultAccessTokenTTL, f.issuer.gotTTL)
	})

	t.Run("login stamps last login time", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		_, err := f.service.Login(f.ctx, "priya@example.com", "s3cret-password")
		require.NoError(t, err)

		stored, err := f.store.FindByEmail(f.ctx, "priya@example.com")
		require.NoError(t, err)
		assert.Equal(t, f.now, stored.LastLoginAt)
	})

	t.Run("successful login is audited", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		_, err := f.service.Login(f.ctx, "priya@example.com", "s3cret-password")
		require.NoError(t, err)

		events, err := f.audits.ListByEntity(f.ctx, user.EntityID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionLoginSucceeded, events[0].Action)
		assert.Equal(t, user.ID, events[0].UserID)
	})

	t.Run("unknown email is rejected without leaking existence", func(t *testing.T) {
		f := newAuthFixture(t)

		_, err := f.service.Login(f.ctx, "nobody@example.com", "whatever-password")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))

		events, listErr := f.audits.ListByEntity(f.ctx, id.EntityID{})
		require.NoError(t, listErr)
		require.Len(t, events, 1)
		assert.Equal(t, audit.ActionLoginFailed, events[0].Action)
	})

	t.Run("wrong password is rejected with the same error", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)

		_, err := f.service.Login(f.ctx, "priya@example.com", "wrong-password")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("token issuer failure surfaces as internal", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "priya@example.com", "s3cret-password", requestcontext.RoleClient)
		f.issuer.err = assert.AnError
		f.issuer.token = ""

		_, err := f.service.Login(f.ctx, "priya@example.com", "s3cret-password")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})

	t.Run("custom token ttl is honored", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		issuer := &stubIssuer{token: "signed.jwt.token"}
		store := newMemoryUserStore()
		service := NewService(store, issuer, nil, logger, WithAccessTokenTTL(15*time.Minute))

		ctx := context.Background()
		_, err := service.Register(ctx, RegisterRequest{
			Email:    "priya@example.com",
			Password: "s3cret-password",
			Role:     requestcontext.RoleClient,
		})
		require.NoError(t, err)

		pair, err := service.Login(ctx, "priya@example.com", "s3cret-password")
		require.NoError(t, err)
		assert.Equal(t, int64(900), pair.ExpiresIn)
		assert.Equal(t, 15*time.Minute, issuer.gotTTL)
	})
}
