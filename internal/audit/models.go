// Package audit captures the compliance trail: who evaluated which vendor,
// from where, with what outcome. Events are transport-agnostic so stores and
// sinks can fan out.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	id "bloodhound/pkg/domain"
)

// Action identifies one auditable operation.
type Action string

const (
	ActionVendorEvaluated     Action = "vendor_evaluated"
	ActionVendorWatchlisted   Action = "vendor_watchlisted"
	ActionVendorUnwatchlisted Action = "vendor_unwatchlisted"
	ActionLoginSucceeded      Action = "login_succeeded"
	ActionLoginFailed         Action = "login_failed"
)

// Event is one audit trail entry. GSTINHash carries a SHA-256 of the vendor
// GSTIN so the trail stays traceable without storing the raw identifier.
type Event struct {
	Timestamp time.Time   `json:"timestamp"`
	Action    Action      `json:"action"`
	UserID    id.UserID   `json:"user_id"`
	EntityID  id.EntityID `json:"entity_id"`
	GSTINHash string      `json:"gstin_hash,omitempty"`
	Decision  string      `json:"decision,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	IP        string      `json:"ip,omitempty"`
	UserAgent string      `json:"user_agent,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// HashGSTIN returns the hex SHA-256 of a GSTIN for traceable, PII-free audit
// entries.
func HashGSTIN(gstin string) string {
	sum := sha256.Sum256([]byte(gstin))
	return hex.EncodeToString(sum[:])
}
