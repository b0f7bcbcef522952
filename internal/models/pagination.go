package models

const (
	// DefaultPage is used when no page is supplied (1-based).
	DefaultPage = 1
	// DefaultLimit is used when no limit is supplied.
	DefaultLimit = 10
	// MaxLimit caps the page size for every paginated endpoint.
	MaxLimit = 100
)

// PaginationMeta describes one page of a paginated result set. It is derived,
// never stored: a pure function of (page, limit, total).
type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPaginationMeta computes totalPages = ceil(total/limit),
// hasNext = page < totalPages and hasPrev = page > 1.
func NewPaginationMeta(page, limit int, total int64) PaginationMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// NormalizePageLimit applies the defaults and the limit cap shared by every
// paginated endpoint.
func NormalizePageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
