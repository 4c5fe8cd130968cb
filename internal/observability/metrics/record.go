package metrics

import (
	"time"
)

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordGraphQLOperation records an executed operation under a bounded
// label such as its root field. An empty label is recorded as "other".
func RecordGraphQLOperation(operation, code string, duration time.Duration) {
	if operation == "" {
		operation = "other"
	}
	GraphQLOperationsTotal.WithLabelValues(operation, code).Inc()
	GraphQLOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateArticlesTotal sets the article row count gauge.
func UpdateArticlesTotal(count int64) {
	ArticlesTotal.Set(float64(count))
}

// RecordImport adds the outcome of one import run.
func RecordImport(imported, skipped, failed int) {
	ArticlesImportedTotal.WithLabelValues("imported").Add(float64(imported))
	ArticlesImportedTotal.WithLabelValues("skipped").Add(float64(skipped))
	ArticlesImportedTotal.WithLabelValues("failed").Add(float64(failed))
}

// UpdateDBConnectionStats updates the connection pool gauges.
func UpdateDBConnectionStats(inUse, idle int) {
	DBConnectionsInUse.Set(float64(inUse))
	DBConnectionsIdle.Set(float64(idle))
}

// SetStoreCircuitOpen reflects the store breaker state.
func SetStoreCircuitOpen(open bool) {
	if open {
		StoreCircuitOpen.Set(1)
		return
	}
	StoreCircuitOpen.Set(0)
}
