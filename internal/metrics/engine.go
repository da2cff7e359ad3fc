// Package metrics exposes prometheus instrumentation for the engine and the
// explorer client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rodcoppi/ls-lisktransactions-sub002/internal/engine"
)

var (
	cycleTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "update_cycle_total",
		Help:      "Count of update cycles by mode and outcome.",
	}, []string{"mode", "status"})

	cycleDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "update_cycle_duration_seconds",
		Help:      "Duration of update cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode", "status"})

	fetchPages = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "fetch_pages",
		Help:      "Pages fetched per cycle.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1..512
	}, []string{"mode"})

	fetchTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "fetch_transactions",
		Help:      "New transactions merged per cycle.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"mode"})

	integrityMismatchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "integrity_mismatch_total",
		Help:      "Count of days downgraded to partial because the hourly sum diverged from the daily total.",
	}, []string{"date"})

	missingDays = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "missing_days",
		Help:      "Closed calendar days between the last recorded day and today with no recorded total.",
	})

	persistTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "persist_total",
		Help:      "Count of snapshot persist attempts.",
	}, []string{"status"})

	persistDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "engine",
		Name:      "persist_duration_seconds",
		Help:      "Duration of snapshot persist attempts.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Engine implements engine.Metrics over the prometheus registry.
type Engine struct{}

// NewEngine returns an Engine metrics recorder.
func NewEngine() *Engine {
	return &Engine{}
}

// ObserveCycle records one update cycle outcome.
func (Engine) ObserveCycle(mode engine.Mode, err error, started time.Time) {
	status := statusOf(err)
	cycleTotal.WithLabelValues(string(mode), status).Inc()
	cycleDuration.WithLabelValues(string(mode), status).Observe(time.Since(started).Seconds())
}

// ObserveFetch records pagination volume for one cycle.
func (Engine) ObserveFetch(mode engine.Mode, pages, transactions int) {
	fetchPages.WithLabelValues(string(mode)).Observe(float64(pages))
	fetchTransactions.WithLabelValues(string(mode)).Observe(float64(transactions))
}

// ObserveIntegrityMismatch counts a day downgraded to partial.
func (Engine) ObserveIntegrityMismatch(dateKey string) {
	integrityMismatchTotal.WithLabelValues(dateKey).Inc()
}

// ObserveMissingDays tracks the current date-gap width behind today.
func (Engine) ObserveMissingDays(count int) {
	missingDays.Set(float64(count))
}

// ObservePersist records one snapshot persist attempt.
func (Engine) ObservePersist(err error, started time.Time) {
	status := statusOf(err)
	persistTotal.WithLabelValues(status).Inc()
	persistDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
