// Package pagex implements stable in-memory pagination over an already
// ordered slice. It never re-sorts; ordering is the caller's business.
package pagex

// Page is one page of an ordered sequence.
type Page[T any] struct {
	Page       int   `json:"pageNumber"`
	TotalPages int   `json:"totalPages"`
	TotalItems int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

// Paginate slices items into the requested page. Size is clamped to at
// least 1, totalPages to at least 1, and page into [1, totalPages]. The
// returned Items slice is empty only when items is empty.
func Paginate[T any](items []T, page, size int) Page[T] {
	total := len(items)

	if size < 1 {
		size = 1
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	from := (page - 1) * size
	to := from + size
	if to > total {
		to = total
	}

	pageItems := []T{}
	if from < to {
		pageItems = items[from:to]
	}

	return Page[T]{
		Page:       page,
		TotalPages: totalPages,
		TotalItems: int64(total),
		Items:      pageItems,
	}
}
