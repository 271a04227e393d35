package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Enrichment results.
const (
	EnrichOK       = "ok"
	EnrichSkipped  = "skipped"
	EnrichFailed   = "failed"
	EnrichDisabled = "disabled"
)

// Metrics provides observability for the insurance overview.
// Tracks lookups by outcome, per-product enrichment results and the
// end-to-end lookup duration.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	Enrichments    *prometheus.CounterVec
	LookupDuration prometheus.Histogram
}

// New registers the insurance metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insurance_lookups_total",
			Help: "Total number of insurance overview lookups by outcome",
		}, []string{"outcome"}),
		Enrichments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "insurance_enrichments_total",
			Help: "Total number of policy detail enrichments by product and result",
		}, []string{"product", "result"}),
		LookupDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "insurance_lookup_duration_seconds",
			Help:    "Duration of insurance overview lookups including enrichment",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementLookup records a finished lookup. Safe on a nil receiver.
func (m *Metrics) IncrementLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

// IncrementEnrichment records one policy enrichment. Safe on a nil receiver.
func (m *Metrics) IncrementEnrichment(product, result string) {
	if m == nil {
		return
	}
	m.Enrichments.WithLabelValues(product, result).Inc()
}

// ObserveLookup records the duration of a lookup.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	if m == nil {
		return
	}
	m.LookupDuration.Observe(time.Since(start).Seconds())
}
