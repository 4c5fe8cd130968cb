package article

import (
	"time"

	"sports-articles/internal/domain/entity"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision,
// e.g. 2025-07-19T10:30:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// View is the wire shape of an article. Optional fields are nil, never omitted.
type View struct {
	ID        string
	Title     string
	Content   string
	CreatedAt *string
	DeletedAt *string
	ImageURL  *string
}

// Format renders an article into its wire shape.
func Format(a *entity.Article) View {
	v := View{
		ID:       a.ID,
		Title:    a.Title,
		Content:  a.Content,
		ImageURL: a.ImageURL,
	}
	if !a.CreatedAt.IsZero() {
		v.CreatedAt = formatTime(a.CreatedAt)
	}
	if at, ok := a.DeletedAt(); ok {
		v.DeletedAt = formatTime(at)
	}
	if v.ImageURL != nil && *v.ImageURL == "" {
		v.ImageURL = nil
	}
	return v
}

// ParseTimestamp parses a value produced by Format.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func formatTime(t time.Time) *string {
	s := t.UTC().Format(TimestampLayout)
	return &s
}

func formatAll(articles []*entity.Article) []View {
	views := make([]View, 0, len(articles))
	for _, a := range articles {
		views = append(views, Format(a))
	}
	return views
}
