package pkg

import "strconv"

// Pagination describes one page of an ordered collection.
//
// An empty collection still has exactly one (empty) page, so TotalPages is
// never below 1. Requesting a page past the end is not an error; the caller
// just gets no items for it.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// ParsePage turns a raw query parameter into a 1-based page number.
// Absent, non-numeric or non-positive values all mean page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// NewPagination computes page metadata for total items split into pages of
// size items each.
func NewPagination(total int64, page, size int) Pagination {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return Pagination{
		Page:       page,
		PageSize:   size,
		TotalItems: total,
		TotalPages: pages,
		HasNext:    page < pages,
		// The page right past the end still has a real previous page;
		// farther out, neither neighbor exists.
		HasPrev: page > 1 && page <= pages+1,
	}
}

// Offset is the number of items to skip to reach this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
