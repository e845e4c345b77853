package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeCommit   = "commit"
	OutcomeRollback = "rollback"
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
)

// Metrics holds the application metrics outside the HTTP layer
type Metrics struct {
	// Database metrics
	Transactions *prometheus.CounterVec
	TxLatency    prometheus.Histogram

	// Change-event metrics
	EventsPublished *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "transactions_total",
			Help:      "Total number of database transactions by outcome",
		}, []string{"outcome"}),
		TxLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent inside database transactions",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of change events handed to the broker by outcome",
		}, []string{"event_type", "outcome"}),
	}
}

// ObserveTx records a finished transaction. Safe on a nil receiver.
func (m *Metrics) ObserveTx(outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Transactions.WithLabelValues(outcome).Inc()
	m.TxLatency.Observe(seconds)
}

// ObservePublish records a publish attempt. Safe on a nil receiver.
func (m *Metrics) ObservePublish(eventType string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.EventsPublished.WithLabelValues(eventType, outcome).Inc()
}
