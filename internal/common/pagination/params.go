package pagination

// Params represents a page request after defaults have been applied.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// Clamp forces params into the accepted range instead of rejecting them.
//
// Rules:
//   - page  = max(1, page)
//   - limit = min(config.MaxLimit, max(1, limit))
func (p Params) Clamp(config Config) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}

// FromOptional builds clamped Params from optional caller values.
// A nil page or limit takes the configured default; anything supplied,
// including zero and negatives, is clamped.
func FromOptional(page, limit *int, config Config) Params {
	p := Params{Page: config.DefaultPage, Limit: config.DefaultLimit}
	if page != nil {
		p.Page = *page
	}
	if limit != nil {
		p.Limit = *limit
	}
	return p.Clamp(config)
}
