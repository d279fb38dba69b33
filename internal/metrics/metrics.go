// Package metrics exposes Prometheus instrumentation for classifications and model calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Metrics groups the collectors registered by the classifier.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	classifications *prometheus.CounterVec
	modelLatency    prometheus.Histogram
	breakerState    prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		classifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "complaint_classifier",
			Name:      "classifications_total",
			Help:      "Classification requests by outcome.",
		}, []string{"outcome"}),
		modelLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "complaint_classifier",
			Name:      "model_request_duration_seconds",
			Help:      "Duration of remote model calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		breakerState: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "complaint_classifier",
			Name:      "circuit_breaker_open",
			Help:      "1 while the model circuit breaker is open, 0 otherwise.",
		}),
	}
}

// ObserveClassification counts one classification with the given outcome.
func (m *Metrics) ObserveClassification(outcome string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(outcome).Inc()
}

// ObserveModelCall records the duration of one remote call.
func (m *Metrics) ObserveModelCall(d time.Duration) {
	if m == nil {
		return
	}
	m.modelLatency.Observe(d.Seconds())
}

// SetBreakerState records a circuit breaker transition.
func (m *Metrics) SetBreakerState(state string) {
	if m == nil {
		return
	}
	if state == "open" {
		m.breakerState.Set(1)
	} else {
		m.breakerState.Set(0)
	}
}
