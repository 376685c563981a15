package vendor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"bloodhound/internal/audit"
	"bloodhound/internal/enrichment/models"
	"bloodhound/internal/report"
	"bloodhound/internal/risk"
	"bloodhound/internal/vendors/metrics"
	id "bloodhound/pkg/domain"
	dErrors "bloodhound/pkg/domain-errors"
	"bloodhound/pkg/requestcontext"
)

var tracer = otel.Tracer("bloodhound/vendor")

// Enricher builds a registry snapshot for a GSTIN.
type Enricher interface {
	Enrich(ctx context.Context, gstin string) (*models.Snapshot, error)
}

// AuditRecorder appends events to the compliance trail.
type AuditRecorder interface {
	Record(ctx context.Context, event audit.Event) error
}

// Service composes enrichment, scoring, and persistence into the evaluate
// operation.
type Service struct {
	enricher Enricher
	store    Store
	auditor  AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService constructs the vendor service.
func NewService(enricher Enricher, store Store, auditor AuditRecorder, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		enricher: enricher,
		store:    store,
		auditor:  auditor,
		logger:   logger,
		metrics:  m,
	}
}

// Evaluate enriches the GSTIN across all registries, scores the vendor, and
// persists the assessed record under the acting entity. The acting identity
// comes from the request context, set by the auth middleware.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*Assessment, error) {
	ctx, span := tracer.Start(ctx, "vendor.Evaluate")
	defer span.End()
	start := time.Now()

	entityID := requestcontext.EntityID(ctx)
	if entityID.IsNil() {
		return nil, dErrors.New(dErrors.CodeForbidden, "entity scope required")
	}

	snapshot, err := s.enricher.Enrich(ctx, req.GSTIN)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	inputs := inputsFromSnapshot(snapshot, req.Aggregates, now)
	if err := inputs.Validate(); err != nil {
		return nil, err
	}

	score, factors, tier := risk.Score(inputs)
	actions := risk.Recommend(risk.RecommendationInputs{
		RiskScore:         score,
		RegistrationDays:  inputs.RegistrationDays,
		MonthsNotFiled:    inputs.MonthsNotFiled,
		ITCAmount:         inputs.ITCAmount,
		DirectorCompanies: inputs.DirectorCompanies,
		CashPayments:      inputs.CashPayments,
	})
	breaches := report.ComplianceBreaches(report.BreachInputs{
		CashPayments:   inputs.CashPayments,
		MonthsNotFiled: inputs.MonthsNotFiled,
		GSTR1Status:    inputs.GSTR1Status,
		ITCAmount:      inputs.ITCAmount,
	})

	record, err := s.persist(ctx, entityID, req, snapshot, inputs, score, factors, tier, now)
	if err != nil {
		return nil, err
	}

	if s.auditor != nil {
		auditErr := s.auditor.Record(ctx, audit.Event{
			Action:    audit.ActionVendorEvaluated,
			GSTINHash: audit.HashGSTIN(snapshot.GSTIN),
			Decision:  tier.String(),
		})
		if auditErr != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "audit record failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", auditErr,
			)
		}
	}

	degraded := snapshot.Degraded()
	s.metrics.IncrementOutcome(tier.String())
	if degraded {
		s.metrics.IncrementDegraded()
	}
	s.metrics.ObserveEvaluateLatency(time.Since(start))
	span.SetAttributes(
		attribute.Int("risk_score", score),
		attribute.String("risk_tier", tier.String()),
		attribute.Bool("degraded", degraded),
	)

	if s.logger != nil {
		s.logger.InfoContext(ctx, "vendor evaluated",
			"request_id", requestcontext.RequestID(ctx),
			"entity_id", entityID,
			"vendor_id", record.ID,
			"risk_score", score,
			"risk_tier", tier.String(),
			"degraded", degraded,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	return &Assessment{
		VendorID:    record.ID,
		GSTIN:       snapshot.GSTIN,
		PAN:         snapshot.PAN,
		Score:       score,
		Tier:        tier,
		Factors:     factors,
		Actions:     actions,
		Breaches:    breaches,
		Inputs:      inputs,
		Sources:     snapshot.Sources,
		Degraded:    degraded,
		EvaluatedAt: now,
	}, nil
}

// persist writes the assessed vendor record, keeping a stable vendor ID across
// re-evaluations of the same GSTIN.
func (s *Service) persist(ctx context.Context, entityID id.EntityID, req EvaluateRequest, snapshot *models.Snapshot, inputs risk.Inputs, score int, factors []string, tier risk.Tier, now time.Time) (*Vendor, error) {
	record := &Vendor{
		EntityID:          entityID,
		Name:              req.Name,
		GSTIN:             snapshot.GSTIN,
		PAN:               snapshot.PAN,
		RegistrationDays:  inputs.RegistrationDays,
		AddressType:       inputs.AddressType,
		DirectorCompanies: inputs.DirectorCompanies,
		GSTR1Status:       inputs.GSTR1Status,
		MonthsNotFiled:    inputs.MonthsNotFiled,
		TransactionCount:  inputs.TransactionCount,
		ITCAmount:         inputs.ITCAmount,
		CashPayments:      inputs.CashPayments,
		RiskScore:         score,
		RiskTier:          tier,
		RiskFactors:       factors,
		LastAnalyzedAt:    now,
		CreatedAt:         now,
	}

	existing, err := s.store.FindByGSTIN(ctx, entityID, snapshot.GSTIN)
	switch {
	case err == nil:
		record.ID = existing.ID
		record.Watchlisted = existing.Watchlisted
		record.CreatedAt = existing.CreatedAt
		if record.Name == "" {
			record.Name = existing.Name
		}
	case errors.Is(err, ErrNotFound):
		record.ID = id.NewVendorID()
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "vendor lookup failed")
	}

	if err := s.store.Upsert(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "vendor save failed")
	}
	return record, nil
}

// List returns the acting entity's vendors, riskiest first.
func (s *Service) List(ctx context.Context) ([]Vendor, error) {
	entityID := requestcontext.EntityID(ctx)
	if entityID.IsNil() {
		return nil, dErrors.New(dErrors.CodeForbidden, "entity scope required")
	}
	return s.store.ListByEntity(ctx, entityID)
}

// SetWatchlist flips a vendor's watchlist flag within the acting entity.
func (s *Service) SetWatchlist(ctx context.Context, vendorID id.VendorID, watchlisted bool) error {
	entityID := requestcontext.EntityID(ctx)
	if entityID.IsNil() {
		return dErrors.New(dErrors.CodeForbidden, "entity scope required")
	}
	if err := s.store.SetWatchlist(ctx, entityID, vendorID, watchlisted); err != nil {
		if errors.Is(err, ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "watchlist update failed")
	}

	if s.auditor != nil {
		action := audit.ActionVendorWatchlisted
		if !watchlisted {
			action = audit.ActionVendorUnwatchlisted
		}
		if err := s.auditor.Record(ctx, audit.Event{Action: action}); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "audit record failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}
	return nil
}
