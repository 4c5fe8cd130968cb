package sqlite

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

// Timestamps are stored as Unix milliseconds.
func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
