package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for registry connectors and the snapshot cache.
type Metrics struct {
	// Connector fetch latencies by source
	FetchLatency *prometheus.HistogramVec

	// Connector failures by source and failure kind
	FetchFailures *prometheus.CounterVec

	// Snapshot cache hits/misses
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		FetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bloodhound_registry_fetch_duration_seconds",
			Help:    "Duration of registry connector fetches by source",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}), // source: "gstn", "mca", "ibbi", "udyam"

		FetchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_registry_fetch_failures_total",
			Help: "Total registry connector failures by source and kind",
		}, []string{"source", "kind"}),

		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_registry_cache_hits_total",
			Help: "Total snapshot cache hits",
		}, []string{"store"}),

		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_registry_cache_misses_total",
			Help: "Total snapshot cache misses",
		}, []string{"store"}),
	}
}

// ObserveFetchLatency records the duration of one connector fetch.
func (m *Metrics) ObserveFetchLatency(source string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// RecordFetchFailure records a connector failure by taxonomy kind.
func (m *Metrics) RecordFetchFailure(source, kind string) {
	if m != nil {
		m.FetchFailures.WithLabelValues(source, kind).Inc()
	}
}

// RecordCacheHit records a snapshot cache hit.
func (m *Metrics) RecordCacheHit(store string) {
	if m != nil {
		m.CacheHits.WithLabelValues(store).Inc()
	}
}

// RecordCacheMiss records a snapshot cache miss.
func (m *Metrics) RecordCacheMiss(store string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(store).Inc()
	}
}
