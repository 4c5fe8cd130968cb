// Package circuitbreaker protects calls to the article store with
// github.com/sony/gobreaker so that a failing database is not hammered by
// every incoming request.
package circuitbreaker

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config describes when a breaker trips and how it recovers.
type Config struct {
	Name string

	// MaxRequests is how many probe calls pass while half-open.
	MaxRequests uint32
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// The breaker trips once at least MinRequests calls were counted and the
	// failure ratio reaches FailureThreshold.
	MinRequests      uint32
	FailureThreshold float64

	// IsSuccessful classifies a returned error. Nil means only a nil error
	// counts as success.
	IsSuccessful func(err error) bool
	// OnStateChange is called after the logged transition, if set.
	OnStateChange func(from, to gobreaker.State)
}

// StoreConfig trips after five straight failures and probes again after 30s.
func StoreConfig() Config {
	return Config{
		Name:             "article-store",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		MinRequests:      5,
		FailureThreshold: 1.0,
	}
}

func (c Config) readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < c.MinRequests || counts.Requests == 0 {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= c.FailureThreshold
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	name    string
	breaker *gobreaker.CircuitBreaker
}

// New builds a closed breaker from cfg.
func New(cfg Config) *CircuitBreaker {
	return &CircuitBreaker{
		name: cfg.Name,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         cfg.Name,
			MaxRequests:  cfg.MaxRequests,
			Interval:     cfg.Interval,
			Timeout:      cfg.Timeout,
			IsSuccessful: cfg.IsSuccessful,
			ReadyToTrip:  cfg.readyToTrip,
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				if cfg.OnStateChange != nil {
					cfg.OnStateChange(from, to)
				}
			},
		}),
	}
}

// Execute runs fn unless the breaker is open, in which case it fails fast
// with gobreaker.ErrOpenState (or ErrTooManyRequests while half-open).
func Execute[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (cb *CircuitBreaker) Name() string { return cb.name }

func (cb *CircuitBreaker) State() gobreaker.State { return cb.breaker.State() }

// IsOpen reports whether calls are currently rejected without running.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}
