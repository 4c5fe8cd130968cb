package pagination

// Strategy turns page params into a store query and back into metadata.
type Strategy interface {
	// CalculateQuery returns the skip/take pair for the requested page.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata constructs pagination metadata from the total count.
	BuildMetadata(params Params, total int64) Metadata
}

// QueryParams represents the calculated query parameters for the store.
type QueryParams struct {
	Offset int
	Limit  int
}

// OffsetStrategy implements skip/take pagination over a stable order.
type OffsetStrategy struct {
	Config Config
}

// CalculateQuery clamps params and calculates offset and limit.
func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	p := params.Clamp(s.config())
	return QueryParams{
		Offset: CalculateOffset(p.Page, p.Limit),
		Limit:  p.Limit,
	}
}

// BuildMetadata constructs the page envelope for clamped params.
func (s OffsetStrategy) BuildMetadata(params Params, total int64) Metadata {
	return NewMetadata(params.Clamp(s.config()), total)
}

func (s OffsetStrategy) config() Config {
	if s.Config.MaxLimit < 1 {
		return DefaultConfig()
	}
	return s.Config
}
