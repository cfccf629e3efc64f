package domain

// PaginationParams holds offset-based pagination parameters for list queries.
type PaginationParams struct {
	Skip  int
	Limit int
}

// Offset returns the number of rows to skip, never negative.
func (p PaginationParams) Offset() int {
	if p.Skip < 0 {
		return 0
	}
	return p.Skip
}

// Window returns the [start, end) slice bounds of this page within n items.
func (p PaginationParams) Window(n int) (start, end int) {
	start = p.Offset()
	if start > n {
		start = n
	}
	end = n
	if p.Limit > 0 && start+p.Limit < n {
		end = start + p.Limit
	}
	return start, end
}
