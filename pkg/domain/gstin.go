package domain

import (
	"strings"

	dErrors "bloodhound/pkg/domain-errors"
)

// GSTIN is the 15-character GST registration identifier:
// state code (2), PAN (10), entity code (1), default letter (1), checksum (1).
// Only the length is enforced here; checksum validation belongs to the
// onboarding flow that talks to the GSTN portal.
type GSTIN string

// PAN is the 10-character permanent account number embedded in a GSTIN.
type PAN string

const gstinLength = 15

// ParseGSTIN validates a raw GSTIN and normalizes it to upper case.
func ParseGSTIN(raw string) (GSTIN, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != gstinLength {
		return "", dErrors.New(dErrors.CodeValidation, "gstin must be exactly 15 characters")
	}
	return GSTIN(strings.ToUpper(trimmed)), nil
}

// ExtractPAN derives the PAN from positions 2-11 of a GSTIN. Inputs shorter
// than 15 characters yield an empty PAN, which callers must treat as
// "identifier unavailable" rather than an error.
func ExtractPAN(gstin string) PAN {
	if len(gstin) >= gstinLength {
		return PAN(strings.ToUpper(gstin[2:12]))
	}
	return ""
}

func (g GSTIN) String() string { return string(g) }
func (p PAN) String() string   { return string(p) }

// IsZero reports whether the PAN could not be derived.
func (p PAN) IsZero() bool { return p == "" }
