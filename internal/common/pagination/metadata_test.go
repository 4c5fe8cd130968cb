package pagination_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"sports-articles/internal/common/pagination"
)

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params pagination.Params
		total  int64
		want   pagination.Metadata
	}{
		{
			name:   "empty store",
			params: pagination.Params{Page: 1, Limit: 10},
			total:  0,
			want:   pagination.Metadata{TotalCount: 0, Page: 1, Limit: 10, TotalPages: 0},
		},
		{
			name:   "first of three",
			params: pagination.Params{Page: 1, Limit: 10},
			total:  25,
			want: pagination.Metadata{
				TotalCount: 25, Page: 1, Limit: 10, TotalPages: 3,
				HasNextPage: true,
			},
		},
		{
			name:   "last page",
			params: pagination.Params{Page: 3, Limit: 10},
			total:  25,
			want: pagination.Metadata{
				TotalCount: 25, Page: 3, Limit: 10, TotalPages: 3,
				HasPrevPage: true,
			},
		},
		{
			name:   "past the end",
			params: pagination.Params{Page: 100, Limit: 10},
			total:  25,
			want: pagination.Metadata{
				TotalCount: 25, Page: 100, Limit: 10, TotalPages: 3,
				HasPrevPage: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := pagination.NewMetadata(tt.params, tt.total)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewMetadata mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// 全組み合わせで「各ページの件数の合計 = totalCount」が成り立つこと
func TestMetadata_PageSizesSumToTotal(t *testing.T) {
	t.Parallel()

	cfg := pagination.DefaultConfig()
	for total := int64(0); total <= 120; total += 7 {
		for _, limit := range []int{1, 3, 10, 50} {
			meta := pagination.NewMetadata(pagination.Params{Page: 1, Limit: limit}.Clamp(cfg), total)

			var sum int64
			for page := 1; page <= meta.TotalPages; page++ {
				offset := pagination.CalculateOffset(page, limit)
				size := min(int64(limit), total-int64(offset))
				m := pagination.NewMetadata(pagination.Params{Page: page, Limit: limit}, total)
				if !m.Consistent(int(size)) {
					t.Fatalf("inconsistent metadata %+v for size %d", m, size)
				}
				sum += size
			}
			if sum != total {
				t.Fatalf("total=%d limit=%d: page sizes sum to %d", total, limit, sum)
			}

			beyond := pagination.NewMetadata(pagination.Params{Page: meta.TotalPages + 1, Limit: limit}, total)
			if !beyond.Consistent(0) || beyond.HasNextPage {
				t.Fatalf("page beyond end should be empty with no next page: %+v", beyond)
			}
		}
	}
}

func TestMetadata_ConsistentRejects(t *testing.T) {
	t.Parallel()

	m := pagination.NewMetadata(pagination.Params{Page: 1, Limit: 10}, 25)
	if m.Consistent(11) {
		t.Error("more items than limit must be inconsistent")
	}
	if m.Consistent(3) {
		t.Error("short first page must be inconsistent")
	}
	m.HasNextPage = false
	if m.Consistent(10) {
		t.Error("wrong hasNextPage must be inconsistent")
	}
}
