// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the page size used when the caller does not supply one.
const DefaultLimit = 20

// MaxLimit caps a caller-supplied page size.
const MaxLimit = 100

// ListCap bounds uncapped collection listings (badges, challenges).
const ListCap = 100

// ParseSkip extracts the "skip" query parameter (0-based offset).
// Returns 0 if not present or invalid.
func ParseSkip(r *http.Request) int64 {
	s := query.Get(r, "skip")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// ParseLimit extracts the "limit" query parameter, clamped to [1, MaxLimit].
// Returns DefaultLimit if not present or invalid.
func ParseLimit(r *http.Request) int64 {
	s := query.Get(r, "limit")
	if s == "" {
		return DefaultLimit
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}
