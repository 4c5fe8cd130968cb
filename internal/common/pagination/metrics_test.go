package pagination

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDepthBucket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page int
		want string
	}{
		{0, "first"},
		{1, "first"},
		{2, "2-10"},
		{10, "2-10"},
		{11, "11-100"},
		{100, "11-100"},
		{101, "100+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, depthBucket(tt.page), "page %d", tt.page)
	}
}

func TestObservePage(t *testing.T) {
	counter := pageRequests.WithLabelValues("ok", "2-10")
	before := testutil.ToFloat64(counter)

	ObservePage("ok", Params{Page: 3, Limit: 10}, 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestObserveTotal(t *testing.T) {
	ObserveTotal(25)
	assert.Equal(t, float64(25), testutil.ToFloat64(lastTotal))
}
