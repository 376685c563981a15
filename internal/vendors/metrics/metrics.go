package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vendor module.
type Metrics struct {
	// Evaluation outcomes by risk tier
	EvaluationOutcome *prometheus.CounterVec

	// Evaluations that ran on partial registry data
	DegradedEvaluations prometheus.Counter

	// Overall evaluation latency including enrichment
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all vendor module metrics registered.
func New() *Metrics {
	return &Metrics{
		EvaluationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bloodhound_vendor_evaluations_total",
			Help: "Total vendor evaluations by resulting risk tier",
		}, []string{"tier"}),

		DegradedEvaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bloodhound_vendor_degraded_evaluations_total",
			Help: "Total vendor evaluations scored on partial registry data",
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bloodhound_vendor_evaluate_duration_seconds",
			Help:    "Duration of full vendor evaluation including enrichment",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

// IncrementOutcome records an evaluation outcome by tier.
func (m *Metrics) IncrementOutcome(tier string) {
	if m != nil {
		m.EvaluationOutcome.WithLabelValues(tier).Inc()
	}
}

// IncrementDegraded records an evaluation built from partial registry data.
func (m *Metrics) IncrementDegraded() {
	if m != nil {
		m.DegradedEvaluations.Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
