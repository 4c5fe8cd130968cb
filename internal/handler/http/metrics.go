package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sports-articles/internal/handler/http/responsewriter"
	"sports-articles/internal/observability/metrics"
)

// knownRoutes bounds the path label; anything else is reported as "other".
var knownRoutes = map[string]struct{}{
	"/graphql": {},
	"/health":  {},
	"/ready":   {},
	"/live":    {},
	"/metrics": {},
}

func routeLabel(path string) string {
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return "other"
}

// MetricsMiddleware records request count, latency, sizes and in-flight requests.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			routeLabel(r.URL.Path),
			strconv.Itoa(rw.StatusCode()),
			time.Since(start),
			int(max(r.ContentLength, 0)),
			rw.BytesWritten(),
		)
	})
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
