// Package entity defines the article entity, its two-state lifecycle and the
// validation rules applied to mutation input.
package entity

import "time"

// Article is a short text article. CreatedAt is assigned once when the article
// is created and is the sole listing sort key.
type Article struct {
	ID        string
	Title     string
	Content   string
	ImageURL  *string // nil means no image; never an empty string
	CreatedAt time.Time
	Lifecycle Lifecycle
}

// DeletedAt reports when the article was soft-deleted.
// The second result is false for active articles.
func (a *Article) DeletedAt() (time.Time, bool) {
	switch l := a.Lifecycle.(type) {
	case Deleted:
		return l.At, true
	case Active, nil:
		return time.Time{}, false
	default:
		panic("entity: unknown lifecycle")
	}
}

// IsDeleted reports whether the article has been soft-deleted.
func (a *Article) IsDeleted() bool {
	_, deleted := a.DeletedAt()
	return deleted
}

// Draft is validated create/update input: title and content are trimmed and
// non-empty, ImageURL is nil or non-empty.
type Draft struct {
	Title    string
	Content  string
	ImageURL *string
}
