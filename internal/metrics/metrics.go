// Package metrics exports prometheus metrics for applied calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/LeJamon/goAMMd/internal/core/tx"
)

const namespace = "ammd"

// Metrics holds the engine metrics.
type Metrics struct {
	// Applied counts calls by type and result code.
	Applied *prometheus.CounterVec
	// Rejected counts non-success calls by result class.
	Rejected *prometheus.CounterVec
	// Duration observes apply latency by type.
	Duration *prometheus.HistogramVec
}

var _ tx.Recorder = (*Metrics)(nil)

// New creates the metrics and registers them with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		Applied: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "applied_total",
			Help:      "Total number of applied calls by type and result",
		}, []string{"type", "result"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "rejected_total",
			Help:      "Total number of calls that did not commit, by result class",
		}, []string{"class"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "apply_duration_seconds",
			Help:      "Time to apply one call",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}, []string{"type"}),
	}
}

// ObserveApply records one applied call.
func (m *Metrics) ObserveApply(txType tx.Type, result tx.Result, elapsed time.Duration) {
	m.Applied.WithLabelValues(txType.String(), result.String()).Inc()
	m.Duration.WithLabelValues(txType.String()).Observe(elapsed.Seconds())
	if class := resultClass(result); class != "" {
		m.Rejected.WithLabelValues(class).Inc()
	}
}

func resultClass(r tx.Result) string {
	switch {
	case r.IsTec():
		return "tec"
	case r.IsTef():
		return "tef"
	case r.IsTem():
		return "tem"
	}
	return ""
}
