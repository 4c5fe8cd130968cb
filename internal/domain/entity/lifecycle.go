package entity

import "time"

// Lifecycle is the soft-delete state of an article.
// It is sealed: Active and Deleted are the only implementations.
type Lifecycle interface {
	isLifecycle()
}

// Active marks an article visible to every read path.
type Active struct{}

// Deleted marks an article as soft-deleted at the given instant.
type Deleted struct {
	At time.Time
}

func (Active) isLifecycle()  {}
func (Deleted) isLifecycle() {}

// LifecycleFromNullable maps a nullable deletion timestamp, as stored in a
// deleted_at column, to a Lifecycle.
func LifecycleFromNullable(deletedAt *time.Time) Lifecycle {
	if deletedAt == nil {
		return Active{}
	}
	return Deleted{At: *deletedAt}
}
