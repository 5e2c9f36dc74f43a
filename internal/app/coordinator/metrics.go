package coordinator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutation outcomes used as the "outcome" label.
const (
	outcomeSuccess  = "success"
	outcomeNoop     = "noop"
	outcomeFailure  = "failure"
	outcomeInvalid  = "invalid"
	outcomeInFlight = "in_flight"
	outcomeRejected = "rejected"
)

// Metrics are the coordinator's Prometheus instruments.
type Metrics struct {
	mutations *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	refreshes *prometheus.CounterVec
}

// NewMetrics registers the instruments with reg. A nil reg creates them
// unregistered, which tests use.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "danahub",
			Name:      "mutations_total",
			Help:      "Coordinator mutations by entity, action and outcome.",
		}, []string{"entity", "action", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "danahub",
			Name:      "mutation_duration_seconds",
			Help:      "Time spent in the remote call of a mutation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"entity", "action"}),
		refreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "danahub",
			Name:      "cache_refreshes_total",
			Help:      "Cache refreshes by collection and outcome.",
		}, []string{"collection", "outcome"}),
	}
}

func (m *Metrics) mutation(entity, action, outcome string) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(entity, action, outcome).Inc()
}

func (m *Metrics) observe(entity, action string, start time.Time) {
	if m == nil {
		return
	}
	m.latency.WithLabelValues(entity, action).Observe(time.Since(start).Seconds())
}

func (m *Metrics) refresh(collection string, err error) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.refreshes.WithLabelValues(collection, outcome).Inc()
}
