package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sports-articles/internal/common/pagination"
)

func TestOffsetStrategy(t *testing.T) {
	t.Parallel()

	var s pagination.Strategy = pagination.OffsetStrategy{Config: pagination.DefaultConfig()}

	q := s.CalculateQuery(pagination.Params{Page: 3, Limit: 10})
	assert.Equal(t, pagination.QueryParams{Offset: 20, Limit: 10}, q)

	q = s.CalculateQuery(pagination.Params{Page: 0, Limit: 1000})
	assert.Equal(t, pagination.QueryParams{Offset: 0, Limit: 50}, q)

	meta := s.BuildMetadata(pagination.Params{Page: -1, Limit: 0}, 4)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 1, meta.Limit)
	assert.Equal(t, 4, meta.TotalPages)
	assert.True(t, meta.HasNextPage)
}

func TestOffsetStrategy_ZeroConfigFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	q := pagination.OffsetStrategy{}.CalculateQuery(pagination.Params{Page: 2, Limit: 100})
	assert.Equal(t, pagination.QueryParams{Offset: 50, Limit: 50}, q)
}

func TestNewResponse_NilItems(t *testing.T) {
	t.Parallel()

	r := pagination.NewResponse[string](nil, pagination.Metadata{})
	assert.NotNil(t, r.Items)
	assert.Empty(t, r.Items)
}
