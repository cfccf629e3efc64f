package helpers

import (
	"net/http"
	"strconv"

	"timevents/internal/domain"
)

// Pagination query parameter defaults and limits.
const (
	DefaultSkip  = 0
	DefaultLimit = 100
	MaxLimit     = 100
)

// ParsePagination reads skip and limit from the request query string,
// clamps them to valid ranges, and returns domain.PaginationParams.
// Invalid or missing values fall back to defaults.
func ParsePagination(r *http.Request) domain.PaginationParams {
	skip := DefaultSkip
	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v
		}
	}
	limit := DefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 1 {
			limit = min(v, MaxLimit)
		}
	}
	return domain.PaginationParams{Skip: skip, Limit: limit}
}
