// Package tracing wires OpenTelemetry into the service.
//
// NewProvider installs an SDK tracer provider and the W3C propagator,
// Middleware opens a server span per HTTP request and StartSpan opens child
// spans inside handlers:
//
//	shutdown, err := tracing.NewProvider(ctx, tracing.Config{ServiceName: "sports-articles"})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.StartSpan(ctx, "graphql.articlesPage")
//	defer span.End()
package tracing
