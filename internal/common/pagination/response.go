package pagination

// Response is a generic paginated response wrapper.
// T is the type of the items on the page.
type Response[T any] struct {
	Items []T
	Metadata
}

// NewResponse creates a new paginated response with items and metadata.
// A nil slice is normalised to an empty one so encoders emit [] rather than null.
func NewResponse[T any](items []T, metadata Metadata) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{
		Items:    items,
		Metadata: metadata,
	}
}
