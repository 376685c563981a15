package auth

import (
	"context"
	"errors"
	"time"

	id "bloodhound/pkg/domain"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// Store persists user accounts. Emails are unique per store; implementations
// match them case-insensitively.
type Store interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	RecordLogin(ctx context.Context, userID id.UserID, at time.Time) error
}
