// Package metrics holds the service's Prometheus collectors and the helpers
// that record into them.
//
// Collectors register with the default registry on package init and are
// served by the /metrics endpoint.
//
//	start := time.Now()
//	result := schema.Exec(ctx, query, op, vars)
//	metrics.RecordGraphQLOperation(op, code, time.Since(start))
package metrics
