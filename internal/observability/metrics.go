package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gigcopilot"

// Metrics records turn level counters and latencies.
type Metrics struct {
	turns          *prometheus.CounterVec
	turnDuration   *prometheus.HistogramVec
	classification *prometheus.CounterVec
	failures       *prometheus.CounterVec
	superseded     prometheus.Counter
}

// NewMetrics registers the collectors on reg. A nil reg uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		turns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_total",
			Help:      "Conversation turns handled, by category and outcome",
		}, []string{"category", "outcome"}),
		turnDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_duration_seconds",
			Help:      "End to end turn latency",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"category"}),
		classification: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Intent classifications, by category and degraded flag",
		}, []string{"category", "degraded"}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_failures_total",
			Help:      "Failed handler results, by category and reason",
		}, []string{"category", "reason"}),
		superseded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_superseded_total",
			Help:      "Turns cancelled by a newer utterance from the same user",
		}),
	}
}

func (m *Metrics) ObserveTurn(category, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.turns.WithLabelValues(category, outcome).Inc()
	m.turnDuration.WithLabelValues(category).Observe(d.Seconds())
}

func (m *Metrics) ObserveClassification(category string, degraded bool) {
	if m == nil {
		return
	}
	m.classification.WithLabelValues(category, strconv.FormatBool(degraded)).Inc()
}

func (m *Metrics) ObserveFailure(category, reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(category, reason).Inc()
}

func (m *Metrics) ObserveSuperseded() {
	if m == nil {
		return
	}
	m.superseded.Inc()
}
