// Package vendor owns the evaluate operation: enrich a GSTIN across the
// registries, score the vendor, and persist the assessed record under the
// acting entity.
package vendor

import (
	"time"

	"bloodhound/internal/enrichment/models"
	"bloodhound/internal/registry"
	"bloodhound/internal/risk"
	id "bloodhound/pkg/domain"
)

// Aggregates are the caller-supplied transaction figures from the entity's
// books. The registries know nothing about these.
type Aggregates struct {
	AddressType      string
	TransactionCount int
	ITCAmount        float64
	CashPayments     float64
}

// EvaluateRequest is the domain request for one vendor evaluation.
type EvaluateRequest struct {
	GSTIN      string
	Name       string
	Aggregates Aggregates
}

// Vendor is the persisted, entity-scoped vendor record with its latest
// assessment.
type Vendor struct {
	ID       id.VendorID
	EntityID id.EntityID
	Name     string
	GSTIN    string
	PAN      id.PAN

	RegistrationDays  int
	AddressType       string
	DirectorCompanies int
	GSTR1Status       string
	MonthsNotFiled    int
	TransactionCount  int
	ITCAmount         float64
	CashPayments      float64

	RiskScore   int
	RiskTier    risk.Tier
	RiskFactors []string

	Watchlisted    bool
	LastAnalyzedAt time.Time
	CreatedAt      time.Time
}

// Assessment is the evaluation output handed back to callers. Sources lets a
// reviewer distinguish a degraded assessment from a full one.
type Assessment struct {
	VendorID id.VendorID
	GSTIN    string
	PAN      id.PAN

	Score    int
	Tier     risk.Tier
	Factors  []string
	Actions  []string
	Breaches []string

	Inputs      risk.Inputs
	Sources     map[registry.Source]models.SourceOutcome
	Degraded    bool
	EvaluatedAt time.Time
}
