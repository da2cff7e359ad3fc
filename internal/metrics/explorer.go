package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	explorerFetchPageTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "liskengine",
		Subsystem: "explorer",
		Name:      "fetch_page_total",
		Help:      "Count of explorer page fetches.",
	}, []string{"status"})

	explorerFetchPageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "explorer",
		Name:      "fetch_page_duration_seconds",
		Help:      "Duration of explorer page fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	explorerFetchPageItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "liskengine",
		Subsystem: "explorer",
		Name:      "fetch_page_items",
		Help:      "Transactions returned per fetched page.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// Explorer implements explorer.Metrics over the prometheus registry.
type Explorer struct{}

// NewExplorer returns an Explorer metrics recorder.
func NewExplorer() *Explorer {
	return &Explorer{}
}

// ObserveFetchPage records one page fetch outcome.
func (Explorer) ObserveFetchPage(err error, items int, started time.Time) {
	status := statusOf(err)
	explorerFetchPageTotal.WithLabelValues(status).Inc()
	explorerFetchPageDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	if err == nil {
		explorerFetchPageItems.Observe(float64(items))
	}
}
