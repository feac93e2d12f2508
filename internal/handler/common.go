package handler

// common.go holds helpers shared by all handlers: identity extraction
// from the request context and the pagination contract used by every
// listing endpoint.

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/middleware"
)

// errNoUser is returned when the authenticated user id is missing from
// context, which means a route was registered without SessionAuth.
var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's id set by SessionAuth.
func getUserID(c echo.Context) (uint64, error) {
	v, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || v == 0 {
		return 0, errNoUser
	}
	return v, nil
}

// pagination is the envelope returned by every listing endpoint.
type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// newPagination computes totalPages = ceil(total/limit).
func newPagination(page, limit int, total int64) pagination {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// parsePagination reads page/limit query parameters with the defaults
// of the listing screens (page 1, 20 rows). Values are clamped so a
// hostile limit cannot turn into an unbounded query.
func parsePagination(c echo.Context) (page, limit int) {
	page, limit = 1, 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v >= 1 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 1 {
		limit = v
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
