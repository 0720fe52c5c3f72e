package domain

// Listing window defaults. Limit is clamped to MaxPageLimit so a caller
// cannot request unbounded pages.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxPageLimit = 100
)

// Pagination describes the window a listing returned and how much of the
// collection remains beyond it.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
}

// NormalizePage clamps page and limit to sane values, applying defaults
// for zero or negative input.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// NewPagination computes the descriptor for a window that returned
// `returned` items out of `total`. A page past the end yields
// TotalPages unchanged and HasMore false.
func NewPagination(page, limit, total, returned int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	offset := (page - 1) * limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    offset+returned < total,
	}
}
