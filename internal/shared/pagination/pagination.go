package pagination

// Request carries page index and size as they arrive from the HTTP layer.
// Page is zero-based. Values are normalized before hitting a repository.
type Request struct {
	Page int
	Size int
}

// Normalize clamps the request into [0, maxSize] bounds. A non-positive size
// falls back to defaultSize.
func (r Request) Normalize(defaultSize, maxSize int) Request {
	out := r
	if out.Page < 0 {
		out.Page = 0
	}
	if out.Size <= 0 {
		out.Size = defaultSize
	}
	if maxSize > 0 && out.Size > maxSize {
		out.Size = maxSize
	}
	return out
}

// Offset is the row offset for the normalized request.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Page is one page of results plus totals.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
}

// New builds a Page from repository output and the normalized request.
func New[T any](items []T, req Request, totalItems int64) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((totalItems + int64(req.Size) - 1) / int64(req.Size))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
