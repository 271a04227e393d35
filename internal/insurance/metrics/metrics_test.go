package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCountByLabel(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementLookup(OutcomeFound)
	m.IncrementLookup(OutcomeFound)
	m.IncrementLookup(OutcomeNotFound)
	m.IncrementEnrichment("CAR", EnrichFailed)
	m.ObserveLookup(time.Now())

	assert.InDelta(t, 2, testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeFound)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Lookups.WithLabelValues(OutcomeNotFound)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Enrichments.WithLabelValues("CAR", EnrichFailed)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.LookupDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementLookup(OutcomeError)
		m.IncrementEnrichment("PET", EnrichOK)
		m.ObserveLookup(time.Now())
	})
}
