package handler

import (
	"strings"

	"bloodhound/internal/vendors"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
)

const maxVendorNameLength = 200

// EvaluateRequest is the HTTP request body for POST /vendors/evaluate.
type EvaluateRequest struct {
	GSTIN            string  `json:"gstin"`
	Name             string  `json:"name"`
	AddressType      string  `json:"address_type"`
	TransactionCount int     `json:"transaction_count"`
	ITCAmount        float64 `json:"itc_amount"`
	CashPayments     float64 `json:"cash_payments"`

	// Parsed values (populated by Validate)
	parsedGSTIN id.GSTIN
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.Name = strings.TrimSpace(r.Name)
	if len(r.Name) > maxVendorNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 200 characters")
	}

	r.GSTIN = strings.TrimSpace(r.GSTIN)
	if r.GSTIN == "" {
		return dErrors.New(dErrors.CodeValidation, "gstin is required")
	}
	gstin, err := id.ParseGSTIN(r.GSTIN)
	if err != nil {
		return err
	}
	r.parsedGSTIN = gstin

	return nil
}

// ToDomain builds the domain request from the validated body.
func (r *EvaluateRequest) ToDomain() vendor.EvaluateRequest {
	return vendor.EvaluateRequest{
		GSTIN: r.parsedGSTIN.String(),
		Name:  r.Name,
		Aggregates: vendor.Aggregates{
			AddressType:      r.AddressType,
			TransactionCount: r.TransactionCount,
			ITCAmount:        r.ITCAmount,
			CashPayments:     r.CashPayments,
		},
	}
}

// WatchlistRequest is the HTTP request body for PUT /vendors/{vendorID}/watchlist.
type WatchlistRequest struct {
	Watchlisted bool `json:"watchlisted"`
}

// Validate implements the Validatable interface. The body carries only a
// boolean, so there is nothing to reject beyond a missing body.
func (r *WatchlistRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return nil
}
