package domain

import (
	"math"
	"strconv"
)

// Pagination bounds.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageRequest is a validated page/per_page pair.
type PageRequest struct {
	Page    int
	PerPage int
}

// NewPageRequest validates page ≥ 1 and 1 ≤ perPage ≤ maxPerPage.
// A non-positive maxPerPage falls back to MaxPerPage. Pages whose offset
// would not fit in an int are rejected.
func NewPageRequest(page, perPage, maxPerPage int) (PageRequest, error) {
	if maxPerPage <= 0 || maxPerPage > MaxPerPage {
		maxPerPage = MaxPerPage
	}

	var errs ValidationErrors
	if page < 1 {
		errs = append(errs, NewValidationError("page", "must be at least 1", nil))
	}
	if perPage < 1 || perPage > maxPerPage {
		errs = append(errs, NewValidationError("per_page",
			"must be between 1 and "+strconv.Itoa(maxPerPage), nil))
	} else if page-1 > math.MaxInt/perPage {
		errs = append(errs, NewValidationError("page", "is too large", nil))
	}
	if err := errs.OrNil(); err != nil {
		return PageRequest{}, err
	}

	return PageRequest{Page: page, PerPage: perPage}, nil
}

// Offset is the number of rows skipped before this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit is the maximum number of rows on this page.
func (p PageRequest) Limit() int {
	return p.PerPage
}

// Page is one slice of an ordered collection.
type Page[T any] struct {
	Items   []T `json:"items"`
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// NewPage assembles a Page, computing the page count from total.
func NewPage[T any](items []T, total int, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    req.Page,
		PerPage: req.PerPage,
		Pages:   PageCount(total, req.PerPage),
	}
}

// PageCount returns ceil(total / perPage).
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
