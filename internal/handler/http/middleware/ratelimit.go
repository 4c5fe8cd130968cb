package middleware

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"sports-articles/internal/handler/http/respond"
	"sports-articles/internal/observability/metrics"
)

// RateLimitConfig configures the per-client token bucket.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client. Zero or less disables limiting.
	RequestsPerSecond float64
	// Burst is the bucket size.
	Burst int
	// IdleTTL is how long an unused bucket is kept before cleanup.
	IdleTTL time.Duration
}

// DefaultRateLimitConfig allows 20 req/s with bursts of 40.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 20,
		Burst:             40,
		IdleTTL:           10 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	cfg       RateLimitConfig
	extractor IPExtractor
	now       func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewIPRateLimiter builds a limiter. A nil extractor means RemoteAddrExtractor.
func NewIPRateLimiter(cfg RateLimitConfig, extractor IPExtractor) *IPRateLimiter {
	if extractor == nil {
		extractor = RemoteAddrExtractor{}
	}
	if cfg.Burst < 1 {
		cfg.Burst = max(1, int(math.Ceil(cfg.RequestsPerSecond)))
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultRateLimitConfig().IdleTTL
	}
	return &IPRateLimiter{
		cfg:       cfg,
		extractor: extractor,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
	}
}

// Enabled reports whether requests are limited at all.
func (l *IPRateLimiter) Enabled() bool {
	return l.cfg.RequestsPerSecond > 0
}

// reserve takes a token for key and returns how long the caller must wait for
// one when the bucket is empty.
func (l *IPRateLimiter) reserve(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(l.cfg.RequestsPerSecond), l.cfg.Burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	if v.limiter.AllowN(now, 1) {
		return true, 0
	}
	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	r.CancelAt(now)
	return false, delay
}

// ActiveClients returns the number of tracked buckets.
func (l *IPRateLimiter) ActiveClients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Sweep drops buckets idle for longer than IdleTTL and returns how many it removed.
func (l *IPRateLimiter) Sweep() int {
	cutoff := l.now().Add(-l.cfg.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// Run sweeps idle buckets every interval until ctx is done.
func (l *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Sweep(); n > 0 {
				slog.Debug("rate limiter sweep", slog.Int("removed", n), slog.Int("active", l.ActiveClients()))
			}
		}
	}
}

var errRateLimited = errors.New("rate limit exceeded")

// Middleware rejects requests over the limit with 429 and a Retry-After header.
// Requests whose client address cannot be determined are let through.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	if !l.Enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := l.extractor.ExtractIP(r)
		if err != nil {
			slog.Warn("rate limiter could not determine client ip",
				slog.String("remote_addr", r.RemoteAddr), slog.Any("error", err))
			next.ServeHTTP(w, r)
			return
		}

		if ok, wait := l.reserve(ip); !ok {
			metrics.HTTPRateLimitedTotal.Inc()
			secs := int(math.Ceil(wait.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
			respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
