package pagination

// CalculateOffset calculates the number of rows to skip for a 1-based page.
//
// Formula: offset = (page - 1) * limit
//
// Examples:
//   - Page 1, Limit 10 -> Offset 0
//   - Page 2, Limit 10 -> Offset 10
//   - Page 3, Limit 5  -> Offset 10
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit).
// An empty collection has zero pages.
//
// Examples:
//   - Total 0, Limit 10  -> 0 pages
//   - Total 10, Limit 10 -> 1 page
//   - Total 25, Limit 10 -> 3 pages
func CalculateTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
