package utils

import (
	"net/http"
	"strconv"
)

// ParsePage reads 1-indexed page/limit query params. Page defaults to 1,
// limit to defLimit, capped at maxLimit.
func ParsePage(r *http.Request, defLimit, maxLimit int) (page, limit int) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = defLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// Skip converts a 1-indexed page into a mongo skip value.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return int(pages)
}
