package catalog

// Pager tracks a 1-based page position over a fixed number of pages. The
// zero value is not useful; build one with NewPager so the position starts
// clamped into range.
type Pager struct {
	Page       int
	TotalPages int
	PageSize   int
}

// NewPager builds a pager over totalItems with the given page size. A
// non-positive page size falls back to 1. TotalPages is at least 1 even for
// an empty list so the current page is always valid.
func NewPager(totalItems, pageSize int) Pager {
	if pageSize < 1 {
		pageSize = 1
	}
	return Pager{
		Page:       1,
		TotalPages: PageCount(totalItems, pageSize),
		PageSize:   pageSize,
	}
}

// PageCount returns the number of pages needed for totalItems at the given
// page size, never less than 1.
func PageCount(totalItems, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// CanNext reports whether a later page exists. With a single page both
// CanNext and CanPrev are false.
func (p Pager) CanNext() bool { return p.Page < p.TotalPages }

// CanPrev reports whether an earlier page exists.
func (p Pager) CanPrev() bool { return p.Page > 1 }

// Next returns the pager advanced one page, clamped to the last page.
func (p Pager) Next() Pager {
	if p.CanNext() {
		p.Page++
	}
	return p
}

// Prev returns the pager moved back one page, clamped to the first page.
func (p Pager) Prev() Pager {
	if p.CanPrev() {
		p.Page--
	}
	return p
}

// Goto returns the pager positioned at page n, clamped into [1, TotalPages].
func (p Pager) Goto(n int) Pager {
	if n < 1 {
		n = 1
	}
	if n > p.TotalPages {
		n = p.TotalPages
	}
	p.Page = n
	return p
}

// Slice returns the half-open index range [start, end) of the current page
// over a list of n items. The range is always within bounds, so
// items[start:end] is safe even when the page points past the data.
func (p Pager) Slice(n int) (start, end int) {
	size := p.PageSize
	if size < 1 {
		size = 1
	}
	start = (p.Page - 1) * size
	if start > n {
		start = n
	}
	if start < 0 {
		start = 0
	}
	end = start + size
	if end > n {
		end = n
	}
	return start, end
}

// Paginate returns the items on the pager's current page.
func Paginate[T any](items []T, p Pager) []T {
	start, end := p.Slice(len(items))
	page := make([]T, end-start)
	copy(page, items[start:end])
	return page
}
