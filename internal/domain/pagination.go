package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page (0-based).
// Formula: (Page - 1) * PageSize.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Bounds returns the clamped [start, end) range for the current page over
// an in-memory list of total items. Used where lists are paged after load
// rather than in the query. A PageSize below 1 selects everything from
// start, so the zero value spans the whole list.
func (p PaginationParams) Bounds(total int) (start, end int) {
	start = p.Offset()
	if start > total {
		start = total
	}
	end = start + p.PageSize
	if end > total || p.PageSize < 1 {
		end = total
	}
	return start, end
}
