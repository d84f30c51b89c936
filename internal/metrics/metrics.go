// Package metrics exposes the engine's SLO instrumentation in Prometheus
// exposition format. Every series is incremented as a side effect of a
// state transition in the service, firing or delivery layers; nothing here
// is a parallel source of truth.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the engine's counters and histograms.
type Recorder struct {
	registry *prometheus.Registry

	RemindersCreated prometheus.Counter
	RemindersFired   prometheus.Counter
	RemindersDeduped prometheus.Counter
	FireLag          prometheus.Histogram
	DeliverySuccess  prometheus.Counter
	DeliveryFailure  prometheus.Counter
}

// NewRecorder creates a recorder with its own registry, so tests can hold
// an isolated instance and assert on exact counter movements.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		RemindersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_created_total",
			Help: "Reminders accepted and persisted, excluding replays and dedups.",
		}),
		RemindersFired: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_fired_total",
			Help: "Occurrences handed to the firing pipeline and marked fired.",
		}),
		RemindersDeduped: factory.NewCounter(prometheus.CounterOpts{
			Name: "reminders_deduped_total",
			Help: "Creation requests answered with an existing reminder id.",
		}),
		FireLag: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reminder_fire_lag_seconds",
			Help:    "Delay between an occurrence's due instant and its fire.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DeliverySuccess: factory.NewCounter(prometheus.CounterOpts{
			Name: "push_delivery_success_total",
			Help: "Delivery attempts resolved with positive acknowledgment.",
		}),
		DeliveryFailure: factory.NewCounter(prometheus.CounterOpts{
			Name: "push_delivery_failure_total",
			Help: "Deliveries that exhausted their retry budget.",
		}),
	}
}

// Handler serves the recorder's registry in Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
