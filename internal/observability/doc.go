// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP, GraphQL and the article store
//   - tracing: OpenTelemetry tracer, provider setup and HTTP middleware
package observability
