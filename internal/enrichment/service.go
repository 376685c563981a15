package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"bloodhound/internal/enrichment/models"
	"bloodhound/internal/enrichment/store"
	"bloodhound/internal/registry"
	regmetrics "bloodhound/internal/registry/metrics"
	id "bloodhound/pkg/domain"
	"bloodhound/pkg/requestcontext"
)

var tracer = otel.Tracer("bloodhound/enrichment")

// DefaultConnectorTimeout bounds a single connector fetch when no override is
// configured.
const DefaultConnectorTimeout = 5 * time.Second

// Timeouts holds the per-connector fetch budgets. Zero values fall back to
// DefaultConnectorTimeout.
type Timeouts struct {
	GSTN  time.Duration
	MCA   time.Duration
	IBBI  time.Duration
	Udyam time.Duration
}

func (t Timeouts) forSource(source registry.Source) time.Duration {
	var d time.Duration
	switch source {
	case registry.SourceGSTN:
		d = t.GSTN
	case registry.SourceMCA:
		d = t.MCA
	case registry.SourceIBBI:
		d = t.IBBI
	case registry.SourceUdyam:
		d = t.Udyam
	}
	if d <= 0 {
		return DefaultConnectorTimeout
	}
	return d
}

// SnapshotCache stores enrichment snapshots keyed by GSTIN.
type SnapshotCache interface {
	Find(ctx context.Context, gstin string) (*models.Snapshot, error)
	Save(ctx context.Context, snapshot *models.Snapshot) error
}

// Service is the enrichment aggregator. It owns no state beyond its wiring;
// every Enrich call builds a fresh snapshot.
type Service struct {
	gstn  registry.GSTNClient
	mca   registry.MCAClient
	ibbi  registry.IBBIClient
	udyam registry.UdyamClient

	cache    SnapshotCache
	timeouts Timeouts
	logger   *slog.Logger
	metrics  *regmetrics.Metrics
}

// Option configures optional service wiring.
type Option func(*Service)

func WithCache(cache SnapshotCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Service) { s.timeouts = timeouts }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(metrics *regmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = metrics }
}

// NewService constructs the aggregator over the four registry connectors.
func NewService(gstn registry.GSTNClient, mca registry.MCAClient, ibbi registry.IBBIClient, udyam registry.UdyamClient, opts ...Option) *Service {
	svc := &Service{
		gstn:  gstn,
		mca:   mca,
		ibbi:  ibbi,
		udyam: udyam,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Enrich derives the PAN from the GSTIN, fans out to all four registries
// concurrently, and merges the results into one snapshot.
//
// A connector failure never fails the snapshot: the failed slot is filled
// with its "Unknown" sentinel and recorded in Sources. The only error Enrich
// returns is a malformed GSTIN.
func (s *Service) Enrich(ctx context.Context, rawGSTIN string) (*models.Snapshot, error) {
	ctx, span := tracer.Start(ctx, "enrichment.Enrich")
	defer span.End()

	gstin, err := id.ParseGSTIN(rawGSTIN)
	if err != nil {
		return nil, err
	}
	pan := id.ExtractPAN(gstin.String())

	if s.cache != nil {
		if cached, err := s.cache.Find(ctx, gstin.String()); err == nil {
			span.SetAttributes(attribute.Bool("cache_hit", true))
			s.metrics.RecordCacheHit("snapshot")
			return cached, nil
		} else if errors.Is(err, store.ErrNotFound) {
			s.metrics.RecordCacheMiss("snapshot")
		} else {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "snapshot cache lookup failed",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
			}
		}
	}

	snapshot := &models.Snapshot{
		GSTIN:   gstin.String(),
		PAN:     pan,
		Sources: make(map[registry.Source]models.SourceOutcome, len(registry.Sources)),
	}

	// Each goroutine writes into a disjoint snapshot slot, so the fan-out
	// needs no locking; the errgroup Wait is the single join point. Fetch
	// failures are absorbed per source and must never cancel siblings,
	// which is why every closure returns nil.
	g, gctx := errgroup.WithContext(ctx)
	outcomes := make([]models.SourceOutcome, len(registry.Sources))

	g.Go(func() error {
		record, err := s.fetchGSTN(gctx, gstin.String())
		snapshot.GSTN, outcomes[0] = record, outcomeOf(err)
		return nil
	})
	g.Go(func() error {
		record, err := s.fetchMCA(gctx, pan.String())
		snapshot.MCA, outcomes[1] = record, outcomeOf(err)
		return nil
	})
	g.Go(func() error {
		record, err := s.fetchIBBI(gctx, pan.String())
		snapshot.IBBI, outcomes[2] = record, outcomeOf(err)
		return nil
	})
	g.Go(func() error {
		record, err := s.fetchUdyam(gctx, gstin.String())
		snapshot.Udyam, outcomes[3] = record, outcomeOf(err)
		return nil
	})

	_ = g.Wait()

	now := requestcontext.Now(ctx)
	snapshot.FetchedAt = now
	for i, source := range registry.Sources {
		snapshot.Sources[source] = outcomes[i]
	}
	s.fillSentinels(snapshot, now)

	span.SetAttributes(
		attribute.Bool("degraded", snapshot.Degraded()),
		attribute.Int("failed_sources", len(snapshot.FailedSources())),
	)

	if s.cache != nil {
		if err := s.cache.Save(ctx, snapshot); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "snapshot cache save failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
		}
	}

	return snapshot, nil
}

func (s *Service) fetchGSTN(ctx context.Context, gstin string) (*registry.GSTNRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.forSource(registry.SourceGSTN))
	defer cancel()

	start := time.Now()
	record, err := s.gstn.Fetch(ctx, gstin)
	s.observe(ctx, registry.SourceGSTN, start, err)
	return record, err
}

func (s *Service) fetchMCA(ctx context.Context, pan string) (*registry.MCARecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.forSource(registry.SourceMCA))
	defer cancel()

	start := time.Now()
	record, err := s.mca.Fetch(ctx, pan)
	s.observe(ctx, registry.SourceMCA, start, err)
	return record, err
}

func (s *Service) fetchIBBI(ctx context.Context, pan string) (*registry.IBBIRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.forSource(registry.SourceIBBI))
	defer cancel()

	start := time.Now()
	record, err := s.ibbi.Fetch(ctx, pan)
	s.observe(ctx, registry.SourceIBBI, start, err)
	return record, err
}

func (s *Service) fetchUdyam(ctx context.Context, gstin string) (*registry.UdyamRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeouts.forSource(registry.SourceUdyam))
	defer cancel()

	start := time.Now()
	record, err := s.udyam.Fetch(ctx, gstin)
	s.observe(ctx, registry.SourceUdyam, start, err)
	return record, err
}

func (s *Service) observe(ctx context.Context, source registry.Source, start time.Time, err error) {
	if s.metrics != nil {
		s.metrics.ObserveFetchLatency(string(source), time.Since(start))
	}
	if err == nil {
		return
	}
	kind := registry.KindOf(err)
	if s.metrics != nil {
		s.metrics.RecordFetchFailure(string(source), string(kind))
	}
	if s.logger != nil {
		s.logger.WarnContext(ctx, "registry fetch degraded to sentinel",
			"request_id", requestcontext.RequestID(ctx),
			"source", string(source),
			"kind", string(kind),
			"error", err,
		)
	}
}

// fillSentinels replaces nil slots left by failed fetches with their Unknown
// records so consumers always see a complete four-field snapshot.
func (s *Service) fillSentinels(snapshot *models.Snapshot, at time.Time) {
	if snapshot.GSTN == nil {
		snapshot.GSTN = registry.UnknownGSTN(snapshot.GSTIN, at)
	}
	if snapshot.MCA == nil {
		snapshot.MCA = registry.UnknownMCA(snapshot.PAN.String(), at)
	}
	if snapshot.IBBI == nil {
		snapshot.IBBI = registry.UnknownIBBI(snapshot.PAN.String(), at)
	}
	if snapshot.Udyam == nil {
		snapshot.Udyam = registry.UnknownUdyam(snapshot.GSTIN, at)
	}
}

func outcomeOf(err error) models.SourceOutcome {
	if err == nil {
		return models.SourceOutcome{OK: true}
	}
	return models.SourceOutcome{FailureKind: registry.KindOf(err)}
}
