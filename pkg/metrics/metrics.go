package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TasksDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flywheel_tasks_dispatched_total",
			Help: "Total number of tasks dispatched, by scheduling policy",
		},
		[]string{"policy"},
	)

	TasksFailedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flywheel_tasks_failed_total",
			Help: "Total number of terminal task failures, by final state",
		},
		[]string{"state"},
	)

	PlacementLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flywheel_placement_latency_seconds",
			Help:    "Time taken by one resourceOffers round, by scheduling policy",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"policy"},
	)

	SpeculativeTasksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flywheel_speculative_tasks_total",
			Help: "Total number of speculation ticks that found speculatable work",
		},
	)

	ActiveExecutors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "flywheel_active_executors",
			Help: "Current number of executors known to the registry",
		},
	)

	StarvationWarningsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "flywheel_starvation_warnings_total",
			Help: "Total number of starvation watchdog warnings",
		},
	)
)

func init() {
	prometheus.MustRegister(TasksDispatchedTotal)
	prometheus.MustRegister(TasksFailedTotal)
	prometheus.MustRegister(PlacementLatency)
	prometheus.MustRegister(SpeculativeTasksTotal)
	prometheus.MustRegister(ActiveExecutors)
	prometheus.MustRegister(StarvationWarningsTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
