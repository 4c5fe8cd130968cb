package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
)

// CORSConfig configures cross-origin access to the API.
type CORSConfig struct {
	// AllowedOrigins lists exact origins or "*" for any origin.
	AllowedOrigins []string
	// MaxAge is how long, in seconds, browsers may cache a preflight result.
	MaxAge int
	// Debug logs every CORS decision through Logger.
	Debug  bool
	Logger *slog.Logger
}

// slogPrintf adapts slog to the Printf-style logger rs/cors expects.
type slogPrintf struct {
	logger *slog.Logger
}

func (a slogPrintf) Printf(format string, args ...interface{}) {
	a.logger.Debug(fmt.Sprintf(format, args...), slog.String("component", "cors"))
}

// CORS returns middleware answering preflight requests and decorating
// responses for the GraphQL endpoint. Credentials are never allowed, so a
// wildcard origin is safe.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	opts := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-ID", "traceparent", "tracestate"},
		ExposedHeaders: []string{"X-Request-ID", "X-Trace-Id", "Retry-After"},
		MaxAge:         cfg.MaxAge,
		Debug:          cfg.Debug && cfg.Logger != nil,
	}
	if opts.Debug {
		opts.Logger = slogPrintf{logger: cfg.Logger}
	}

	return cors.New(opts).Handler
}
