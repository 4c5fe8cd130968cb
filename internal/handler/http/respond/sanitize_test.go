package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   error
		want string
	}{
		{"nil", nil, ""},
		{"url dsn", errors.New("dial: postgres://app:s3cret@db:5432/articles"), "dial: postgres://app:****@db:5432/articles"},
		{"key value dsn", errors.New("connect host=db password=hunter2 sslmode=disable"), "connect host=db password=**** sslmode=disable"},
		{"plain", errors.New("Failed to fetch articles"), "Failed to fetch articles"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeError(tt.in))
		})
	}
}
