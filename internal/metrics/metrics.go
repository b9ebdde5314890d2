// Package metrics holds the Prometheus collectors for the task store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the task store.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Mutations       *prometheus.CounterVec
	PersistFailures *prometheus.CounterVec
	Items           prometheus.Gauge
	ItemsCompleted  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
//
// Pass a fresh prometheus.NewRegistry() per store in tests; registering twice
// on the same registerer panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklist_mutations_total",
			Help: "Total number of store mutations applied, by operation",
		}, []string{"op"}),
		PersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tasklist_persist_failures_total",
			Help: "Total number of slot reads or writes that failed and were swallowed",
		}, []string{"op"}),
		Items: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tasklist_items",
			Help: "Current number of items in the list",
		}),
		ItemsCompleted: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tasklist_items_completed",
			Help: "Current number of completed items in the list",
		}),
	}
}

// IncrementMutations counts one applied mutation of kind op.
func (m *Metrics) IncrementMutations(op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op).Inc()
}

// IncrementPersistFailures counts one swallowed storage failure during op.
func (m *Metrics) IncrementPersistFailures(op string) {
	if m == nil {
		return
	}
	m.PersistFailures.WithLabelValues(op).Inc()
}

// SetListSize records the current list size and completed count.
func (m *Metrics) SetListSize(total, completed int) {
	if m == nil {
		return
	}
	m.Items.Set(float64(total))
	m.ItemsCompleted.Set(float64(completed))
}
