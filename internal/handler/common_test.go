package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/lehoangphuc/notary-office-server/internal/middleware"
)

func ctxWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "page=3&limit=50", 3, 50},
		{"limit clamped", "limit=5000", 1, 100},
		{"zero page ignored", "page=0", 1, 20},
		{"negative ignored", "page=-2&limit=-5", 1, 20},
		{"garbage ignored", "page=abc&limit=xyz", 1, 20},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			page, limit := parsePagination(ctxWithQuery(c.query))
			assert.Equal(t, c.wantPage, page)
			assert.Equal(t, c.wantLimit, limit)
		})
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(2, 20, 41)
	assert.Equal(t, int64(3), p.TotalPages) // 41 rows at 20/page

	p = newPagination(1, 20, 40)
	assert.Equal(t, int64(2), p.TotalPages)

	p = newPagination(1, 20, 0)
	assert.Equal(t, int64(0), p.TotalPages)
	assert.Equal(t, int64(0), p.Total)
}

func TestGetUserID(t *testing.T) {
	c := ctxWithQuery("")
	_, err := getUserID(c)
	assert.ErrorIs(t, err, errNoUser)

	c.Set(middleware.CtxUserID, uint64(7))
	uid, err := getUserID(c)
	assert.NoError(t, err)
	assert.Equal(t, uint64(7), uid)

	// Wrong dynamic type means the middleware did not run.
	c.Set(middleware.CtxUserID, "7")
	_, err = getUserID(c)
	assert.ErrorIs(t, err, errNoUser)
}
