package handler

import (
	"time"

	"bloodhound/internal/auth"
)

// TokenResponse is the HTTP response for POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Role        string `json:"role"`
	UserID      string `json:"user_id"`
	EntityID    string `json:"entity_id,omitempty"`
}

// FromTokenPair converts a login outcome to an HTTP response.
func FromTokenPair(pair *auth.TokenPair) *TokenResponse {
	resp := &TokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
		Role:        string(pair.Role),
		UserID:      pair.UserID.String(),
	}
	if !pair.EntityID.IsNil() {
		resp.EntityID = pair.EntityID.String()
	}
	return resp
}

// UserResponse is the HTTP response for POST /auth/register.
type UserResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	EntityID  string    `json:"entity_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromUser converts a registered user to an HTTP response.
func FromUser(user *auth.User) *UserResponse {
	resp := &UserResponse{
		UserID:    user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	if !user.EntityID.IsNil() {
		resp.EntityID = user.EntityID.String()
	}
	return resp
}
