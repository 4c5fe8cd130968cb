// Package middleware holds the cross-origin and per-client rate limiting
// layers of the HTTP stack.
package middleware
