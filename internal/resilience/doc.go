// Package resilience groups the failure-handling helpers shared by the API
// server and its clients.
//
//   - circuitbreaker guards the article store so an unreachable database
//     fails requests fast instead of queueing them.
//   - retry re-issues idempotent client reads with exponential backoff.
//     Mutations are never retried.
package resilience
