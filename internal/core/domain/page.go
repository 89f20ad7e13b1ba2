package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-based page selector.
type PageRequest struct {
	Number int
	Size   int
}

// Normalize clamps the request: Number < 1 becomes 1, Size defaults to
// DefaultPageSize and is capped at MaxPageSize.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Skip is the number of records preceding the page. Call on a normalized request.
func (p PageRequest) Skip() int64 {
	return int64(p.Number-1) * int64(p.Size)
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds a Page from a normalized request and the total match count.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		PageNumber: req.Number,
		PageSize:   req.Size,
		TotalPages: pages,
	}
}
