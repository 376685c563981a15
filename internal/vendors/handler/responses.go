package handler

import (
	"time"

	"bloodhound/internal/report"
	"bloodhound/internal/vendors"
)

// SourceResponse is the per-registry outcome portion of the response.
type SourceResponse struct {
	OK          bool   `json:"ok"`
	FailureKind string `json:"failure_kind,omitempty"`
}

// AssessmentResponse is the HTTP response for POST /vendors/evaluate.
type AssessmentResponse struct {
	VendorID    string                    `json:"vendor_id"`
	GSTIN       string                    `json:"gstin"`
	PAN         string                    `json:"pan"`
	RiskScore   int                       `json:"risk_score"`
	RiskTier    string                    `json:"risk_tier"`
	RiskFactors []string                  `json:"risk_factors"`
	Actions     []string                  `json:"recommended_actions"`
	Breaches    []string                  `json:"compliance_breaches"`
	ITCExposure string                    `json:"itc_exposure"`
	Sources     map[string]SourceResponse `json:"sources"`
	Degraded    bool                      `json:"degraded"`
	EvaluatedAt time.Time                 `json:"evaluated_at"`
}

// FromAssessment converts a domain assessment to an HTTP response.
func FromAssessment(assessment *vendor.Assessment) *AssessmentResponse {
	sources := make(map[string]SourceResponse, len(assessment.Sources))
	for source, outcome := range assessment.Sources {
		sources[string(source)] = SourceResponse{
			OK:          outcome.OK,
			FailureKind: string(outcome.FailureKind),
		}
	}
	return &AssessmentResponse{
		VendorID:    assessment.VendorID.String(),
		GSTIN:       assessment.GSTIN,
		PAN:         assessment.PAN.String(),
		RiskScore:   assessment.Score,
		RiskTier:    assessment.Tier.String(),
		RiskFactors: assessment.Factors,
		Actions:     assessment.Actions,
		Breaches:    assessment.Breaches,
		ITCExposure: report.FormatCurrency(assessment.Inputs.ITCAmount),
		Sources:     sources,
		Degraded:    assessment.Degraded,
		EvaluatedAt: assessment.EvaluatedAt,
	}
}

// VendorResponse is one element of the GET /vendors response.
type VendorResponse struct {
	VendorID       string    `json:"vendor_id"`
	Name           string    `json:"name"`
	GSTIN          string    `json:"gstin"`
	PAN            string    `json:"pan"`
	RiskScore      int       `json:"risk_score"`
	RiskTier       string    `json:"risk_tier"`
	ITCExposure    string    `json:"itc_exposure"`
	Watchlisted    bool      `json:"watchlisted"`
	LastAnalyzedAt time.Time `json:"last_analyzed_at"`
}

// ListResponse is the HTTP response for GET /vendors.
type ListResponse struct {
	Vendors []VendorResponse `json:"vendors"`
}

// FromVendors converts stored vendor records to an HTTP response, riskiest
// first as returned by the store.
func FromVendors(records []vendor.Vendor) *ListResponse {
	vendors := make([]VendorResponse, 0, len(records))
	for _, record := range records {
		vendors = append(vendors, VendorResponse{
			VendorID:       record.ID.String(),
			Name:           record.Name,
			GSTIN:          record.GSTIN,
			PAN:            record.PAN.String(),
			RiskScore:      record.RiskScore,
			RiskTier:       record.RiskTier.String(),
			ITCExposure:    report.FormatCurrency(record.ITCAmount),
			Watchlisted:    record.Watchlisted,
			LastAnalyzedAt: record.LastAnalyzedAt,
		})
	}
	return &ListResponse{Vendors: vendors}
}
