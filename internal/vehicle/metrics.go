package vehicle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks outbound vehicle service calls.
type Metrics struct {
	CallDuration *prometheus.HistogramVec
	CircuitOpen  prometheus.Gauge
}

// NewMetrics registers the vehicle client metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "insurance_vehicle_call_duration_seconds",
			Help:    "Duration of vehicle service calls by result category",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"result"}),
		CircuitOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "insurance_vehicle_circuit_open",
			Help: "1 while the vehicle service circuit breaker is open",
		}),
	}
}

func (m *Metrics) observeCall(result string, start time.Time) {
	if m == nil {
		return
	}
	m.CallDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func (m *Metrics) setCircuitOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}
