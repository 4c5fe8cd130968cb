package pagination

// Metadata describes one page of a listing.
type Metadata struct {
	TotalCount  int64 `json:"totalCount"`  // Active items across all pages
	Page        int   `json:"page"`        // Current page number (1-based, clamped)
	Limit       int   `json:"limit"`       // Items per page (clamped)
	TotalPages  int   `json:"totalPages"`  // ceil(TotalCount / Limit)
	HasNextPage bool  `json:"hasNextPage"` // Page < TotalPages
	HasPrevPage bool  `json:"hasPrevPage"` // Page > 1
}

// NewMetadata derives the page envelope from clamped params and the total
// number of active items.
func NewMetadata(params Params, total int64) Metadata {
	totalPages := CalculateTotalPages(total, params.Limit)
	return Metadata{
		TotalCount:  total,
		Page:        params.Page,
		Limit:       params.Limit,
		TotalPages:  totalPages,
		HasNextPage: params.Page < totalPages,
		HasPrevPage: params.Page > 1,
	}
}

// Consistent reports whether m satisfies the envelope invariants for a page
// holding itemCount items.
func (m Metadata) Consistent(itemCount int) bool {
	if m.Page < 1 || m.Limit < 1 {
		return false
	}
	if m.TotalPages != CalculateTotalPages(m.TotalCount, m.Limit) {
		return false
	}
	if m.HasNextPage != (m.Page < m.TotalPages) || m.HasPrevPage != (m.Page > 1) {
		return false
	}
	if itemCount > m.Limit {
		return false
	}
	remaining := m.TotalCount - int64(CalculateOffset(m.Page, m.Limit))
	if remaining <= 0 {
		return itemCount == 0
	}
	return int64(itemCount) == min(remaining, int64(m.Limit))
}
