// Package domain holds identifier value objects shared across modules.
// Distinct UUID-backed types keep user, entity, and vendor IDs from being
// swapped at call sites; the compiler enforces the boundary.
package domain

import (
	"github.com/google/uuid"

	dErrors "bloodhound/pkg/domain-errors"
)

type (
	// UserID identifies an account holder (client, accountant, or admin).
	UserID uuid.UUID

	// EntityID identifies the business entity that owns vendors.
	EntityID uuid.UUID

	// VendorID identifies a single vendor record within an entity.
	VendorID uuid.UUID
)

func parseUUID(raw, label string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be the nil UUID")
	}
	return parsed, nil
}

// ParseUserID validates and converts a raw string into a UserID.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user_id")
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseEntityID validates and converts a raw string into an EntityID.
func ParseEntityID(raw string) (EntityID, error) {
	parsed, err := parseUUID(raw, "entity_id")
	if err != nil {
		return EntityID{}, err
	}
	return EntityID(parsed), nil
}

// ParseVendorID validates and converts a raw string into a VendorID.
func ParseVendorID(raw string) (VendorID, error) {
	parsed, err := parseUUID(raw, "vendor_id")
	if err != nil {
		return VendorID{}, err
	}
	return VendorID(parsed), nil
}

// NewUserID generates a fresh UserID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewEntityID generates a fresh EntityID.
func NewEntityID() EntityID { return EntityID(uuid.New()) }

// NewVendorID generates a fresh VendorID.
func NewVendorID() VendorID { return VendorID(uuid.New()) }

func (id UserID) String() string   { return uuid.UUID(id).String() }
func (id EntityID) String() string { return uuid.UUID(id).String() }
func (id VendorID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id EntityID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id VendorID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
