package auth

import (
	"time"

	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

// User is an account holder. Clients own exactly one business entity whose
// vendors they evaluate; accountants and admins carry no entity scope of
// their own.
type User struct {
	ID           id.UserID
	EntityID     id.EntityID
	Email        string
	FullName     string
	PasswordHash string
	Role         requestcontext.UserRole
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

// TokenPair is the outcome of a successful login.
type TokenPair struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	Role        requestcontext.UserRole
	UserID      id.UserID
	EntityID    id.EntityID
}
