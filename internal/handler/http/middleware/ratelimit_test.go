package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/* ───────── ヘルパー ───────── */

func request(remote string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.RemoteAddr = remote
	return req
}

func serve(h http.Handler, remote string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, request(remote))
	return rec
}

/* ───────── テスト ───────── */

func TestIPRateLimiter_BurstThenReject(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 3}, nil)
	h := l.Middleware(okHandler())

	for i := range 3 {
		assert.Equal(t, http.StatusOK, serve(h, "198.51.100.1:1000").Code, "request %d", i)
	}

	rec := serve(h, "198.51.100.1:1001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
}

func TestIPRateLimiter_SeparateBucketsPerClient(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, nil)
	h := l.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, "198.51.100.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "198.51.100.1:2").Code)
	assert.Equal(t, http.StatusOK, serve(h, "198.51.100.2:1").Code)
	assert.Equal(t, 2, l.ActiveClients())
}

func TestIPRateLimiter_Refills(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 2, Burst: 1}, nil)
	l.now = func() time.Time { return now }
	h := l.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, "203.0.113.1:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, "203.0.113.1:1").Code)

	now = now.Add(600 * time.Millisecond)
	assert.Equal(t, http.StatusOK, serve(h, "203.0.113.1:1").Code)
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(RateLimitConfig{}, nil)
	assert.False(t, l.Enabled())

	h := l.Middleware(okHandler())
	for range 50 {
		assert.Equal(t, http.StatusOK, serve(h, "203.0.113.1:1").Code)
	}
	assert.Zero(t, l.ActiveClients())
}

func TestIPRateLimiter_UnknownClientPassesThrough(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 1, Burst: 1}, nil)
	h := l.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, "???").Code)
	assert.Equal(t, http.StatusOK, serve(h, "???").Code)
}

func TestIPRateLimiter_Sweep(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 5, Burst: 5, IdleTTL: time.Minute}, nil)
	l.now = func() time.Time { return now }
	h := l.Middleware(okHandler())

	serve(h, "203.0.113.1:1")
	now = now.Add(45 * time.Second)
	serve(h, "203.0.113.2:1")
	now = now.Add(30 * time.Second)

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.ActiveClients())
}

func TestIPRateLimiter_RunStopsWithContext(t *testing.T) {
	t.Parallel()

	l := NewIPRateLimiter(DefaultRateLimitConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
