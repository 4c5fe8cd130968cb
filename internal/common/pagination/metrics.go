package pagination

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_page_requests_total",
			Help: "Article page requests by outcome and page depth",
		},
		[]string{"outcome", "depth"},
	)

	pageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "articles_page_duration_seconds",
			Help:    "Time to serve one article page",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"outcome"},
	)

	pageStoreErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_page_store_errors_total",
			Help: "Page queries that failed in the article store",
		},
	)

	lastTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_page_last_total_count",
			Help: "totalCount reported by the most recent page",
		},
	)
)

// ObservePage records one served (or failed) page request.
func ObservePage(outcome string, params Params, elapsed time.Duration) {
	pageRequests.WithLabelValues(outcome, depthBucket(params.Page)).Inc()
	pageDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveStoreError counts a page query the store could not answer.
func ObserveStoreError() {
	pageStoreErrors.Inc()
}

// ObserveTotal publishes the totalCount of the latest page.
func ObserveTotal(total int64) {
	lastTotal.Set(float64(total))
}

// depthBucket keeps label cardinality bounded however deep clients scroll.
func depthBucket(page int) string {
	switch {
	case page <= 1:
		return "first"
	case page <= 10:
		return "2-10"
	case page <= 100:
		return "11-100"
	default:
		return "100+"
	}
}
