package postgres

import (
	"time"

	"github.com/google/uuid"
)

// Option configures an ArticleRepo.
type Option func(*ArticleRepo)

// WithClock overrides the time source used for created_at and deleted_at.
func WithClock(now func() time.Time) Option {
	return func(r *ArticleRepo) { r.now = now }
}

// WithIDGenerator overrides how new article ids are allocated.
func WithIDGenerator(newID func() string) Option {
	return func(r *ArticleRepo) { r.newID = newID }
}

func defaultID() string { return uuid.NewString() }

// timestamps are kept at millisecond precision so that the value returned by
// Create matches what a later read and the ISO-8601 wire format produce.
func truncate(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }
