package handler

import (
	"strings"

	"bloodhound/internal/auth"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/requestcontext"
)

const maxEmailLength = 254

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *LoginRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	return nil
}

// RegisterRequest is the HTTP request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`

	// Parsed values (populated by Validate)
	parsedRole requestcontext.UserRole
}

// Validate implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if len(r.Email) > maxEmailLength || !strings.Contains(r.Email, "@") {
		return dErrors.New(dErrors.CodeValidation, "email is not valid")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}

	role := requestcontext.UserRole(strings.ToLower(strings.TrimSpace(r.Role)))
	if role == "" {
		role = requestcontext.RoleClient
	}
	if !role.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "role must be client, accountant, or admin")
	}
	r.parsedRole = role

	return nil
}

// ToDomain builds the domain request from the validated body.
func (r *RegisterRequest) ToDomain() auth.RegisterRequest {
	return auth.RegisterRequest{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
		Role:     r.parsedRole,
	}
}
