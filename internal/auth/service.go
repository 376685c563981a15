package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"bloodhound/internal/audit"
	"bloodhound/internal/auth/metrics"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/email"
	"bloodhound/pkg/requestcontext"
)

// DefaultAccessTokenTTL bounds how long an issued access token stays valid.
const DefaultAccessTokenTTL = time.Hour

// TokenIssuer mints signed access tokens. Implemented by jwttoken.JWTService.
type TokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, entityID uuid.UUID, role string, expiresIn time.Duration) (string, error)
}

// AuditRecorder appends events to the compliance trail.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
}

// Service implements registration and password login.
type Service struct {
	store     Store
	tokens    TokenIssuer
	auditor   AuditRecorder
	logger    *slog.Logger
	metrics   *metrics.Metrics
	accessTTL time.Duration
}

// Option configures optional service behavior.
type Option func(*Service)

// WithAccessTokenTTL overrides the issued token lifetime.
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// WithMetrics attaches auth metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService constructs the auth service.
func NewService(store Store, tokens TokenIssuer, auditor AuditRecorder, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:     store,
		tokens:    tokens,
		auditor:   auditor,
		logger:    logger,
		accessTTL: DefaultAccessTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRequest carries a validated signup.
type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Role     requestcontext.UserRole
}

// Register creates a new account. Clients receive a fresh entity scope that
// their vendor records live under; accountants and admins get none.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	normalized := strings.ToLower(strings.TrimSpace(req.Email))
	if normalized == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if !req.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "role must be client, accountant, or admin")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		first, last := email.DeriveNameFromEmail(normalized)
		fullName = first + " " + last
	}

	user := User{
		ID:           id.NewUserID(),
		Email:        normalized,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    requestcontext.Now(ctx),
	}
	if req.Role == requestcontext.RoleClient {
		user.EntityID = id.NewEntityID()
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create user")
	}

	s.metrics.IncrementUsersCreated(string(user.Role))
	s.logger.InfoContext(ctx, "user registered",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"role", string(user.Role),
	)
	return &user, nil
}

// Login verifies credentials and issues an access token. Unknown emails and
// bad passwords return the same outward error so the endpoint does not leak
// which emails exist.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*TokenPair, error) {
	normalized := strings.ToLower(strings.TrimSpace(emailAddr))

	user, err := s.store.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.IncrementLogin("failure")
			s.recordLoginAudit(ctx, audit.Event{Action: audit.ActionLoginFailed, Reason: "unknown email"})
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "look up user")
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.metrics.IncrementLogin("failure")
		s.recordLoginAudit(ctx, audit.Event{
			Action: audit.ActionLoginFailed,
			UserID: user.ID,
			Reason: "password mismatch",
		})
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
	}

	now := requestcontext.Now(ctx)
	if err := s.store.RecordLogin(ctx, user.ID, now); err != nil {
		s.logger.WarnContext(ctx, "last login update failed",
			"request_id", requestcontext.RequestID(ctx),
			"user_id", user.ID,
			"error", err,
		)
	}

	token, err := s.tokens.GenerateAccessToken(uuid.UUID(user.ID), uuid.UUID(user.EntityID), string(user.Role), s.accessTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "issue access token")
	}

	s.metrics.IncrementLogin("success")
	s.recordLoginAudit(ctx, audit.Event{
		Action:   audit.ActionLoginSucceeded,
		UserID:   user.ID,
		EntityID: user.EntityID,
	})

	s.logger.InfoContext(ctx, "login succeeded",
		"request_id", requestcontext.RequestID(ctx),
		"user_id", user.ID,
		"role", string(user.Role),
	)

	return &TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
		Role:        user.Role,
		UserID:      user.ID,
		EntityID:    user.EntityID,
	}, nil
}

func (s *Service) recordLoginAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit record failed",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(event.Action),
			"error", err,
		)
	}
}
