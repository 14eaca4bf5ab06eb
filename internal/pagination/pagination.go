// Package pagination turns (page, page_size) requests into bounded
// offsets and result metadata. It is pure arithmetic: stores apply the
// Limit/Offset to an ordered query and report the total row count, and
// handlers attach the resulting Meta to the response envelope.
package pagination

import (
	"fmt"

	"github.com/nabink/lang-portal/internal/domain"
)

// Default bounds. MaxPageSize can be lowered (but not raised) per request
// set through Limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination validation errors. Both wrap domain.ErrValidation so the API
// boundary maps them to a validation failure.
var (
	// ErrInvalidPage is returned when page < 1.
	ErrInvalidPage = fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)

	// ErrInvalidPageSize is returned when page_size is < 1 or above the
	// configured maximum.
	ErrInvalidPageSize = fmt.Errorf("%w: page_size out of range", domain.ErrValidation)
)

// Limits carries the configurable page-size bounds.
type Limits struct {
	// Default is used when the caller does not specify page_size.
	Default int
	// Max is the upper bound on page_size.
	Max int
}

// DefaultLimits returns the package defaults (20, capped at 100).
func DefaultLimits() Limits {
	return Limits{Default: DefaultPageSize, Max: MaxPageSize}
}

// Params is a validated (page, page_size) pair. Construct it with New;
// the zero value is not valid.
type Params struct {
	Page     int
	PageSize int
}

// New validates page and pageSize against the given limits and returns
// Params. Page must be >= 1 and pageSize within [1, limits.Max].
func New(page, pageSize int, limits Limits) (Params, error) {
	if limits.Max <= 0 {
		limits.Max = MaxPageSize
	}

	if page < 1 {
		return Params{}, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	if pageSize < 1 || pageSize > limits.Max {
		return Params{}, fmt.Errorf("%w: got %d (max %d)", ErrInvalidPageSize, pageSize, limits.Max)
	}

	return Params{Page: page, PageSize: pageSize}, nil
}

// Offset returns the number of rows to skip: (page-1)*page_size.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of rows in the page.
func (p Params) Limit() int {
	return p.PageSize
}

// Meta describes one page of an ordered, countable result set. A request
// beyond the last page is not an error; it produces an empty item slice
// with Meta still describing the full set.
type Meta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewMeta computes page metadata for the given params and total item
// count. TotalPages is ceil(total/page_size), 0 when the set is empty.
func NewMeta(p Params, totalItems int) Meta {
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := totalItems / p.PageSize
	if totalItems%p.PageSize != 0 {
		totalPages++
	}

	return Meta{
		Page:        p.Page,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}
