// Package risk scores a vendor's fraud and compliance exposure from its
// registry profile and transaction aggregates. Scoring is additive over a
// fixed rule order so two identical inputs always produce identical factor
// lists.
package risk

import (
	"fmt"

	dErrors "bloodhound/pkg/domain-errors"
)

// Inputs are the scoring engine's view of a vendor. Registry-derived fields
// come from the enrichment snapshot; transaction aggregates come from the
// caller's books.
type Inputs struct {
	RegistrationDays  int
	AddressType       string
	DirectorCompanies int
	GSTR1Status       string
	MonthsNotFiled    int
	CashPayments      float64
	TransactionCount  int
	ITCAmount         float64
}

// Validate rejects inputs that can never describe a real vendor. Negative
// counts and amounts are caller bugs and must fail before scoring rather than
// be clamped into a misleading score.
func (in Inputs) Validate() error {
	if in.RegistrationDays < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("registration days must not be negative, got %d", in.RegistrationDays))
	}
	if in.DirectorCompanies < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("director companies must not be negative, got %d", in.DirectorCompanies))
	}
	if in.MonthsNotFiled < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("months not filed must not be negative, got %d", in.MonthsNotFiled))
	}
	if in.CashPayments < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("cash payments must not be negative, got %.2f", in.CashPayments))
	}
	if in.TransactionCount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("transaction count must not be negative, got %d", in.TransactionCount))
	}
	if in.ITCAmount < 0 {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("itc amount must not be negative, got %.2f", in.ITCAmount))
	}
	return nil
}
