package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// parsePagination reads the page and page_size query parameters. Absent
// parameters fall back to the configured defaults; non-integer or
// out-of-range values are validation failures, never silently clamped.
func parsePagination(r *http.Request, limits pagination.Limits) (pagination.Params, error) {
	page := 1
	pageSize := limits.Default

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, fmt.Errorf(
				"%w: page must be an integer, got %q", pagination.ErrInvalidPage, raw)
		}
		page = n
	}

	if raw := r.URL.Query().Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return pagination.Params{}, fmt.Errorf(
				"%w: page_size must be an integer, got %q", pagination.ErrInvalidPageSize, raw)
		}
		pageSize = n
	}

	return pagination.New(page, pageSize, limits)
}

// parseIDParam extracts and parses a UUID path parameter.
func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s %q is not a valid UUID", domain.ErrInvalidID, name, raw)
	}
	return id, nil
}
