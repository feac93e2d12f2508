package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// DashboardHandler serves the aggregate statistics endpoints.
type DashboardHandler struct {
	Stats *repository.StatsRepo
}

func NewDashboardHandler(s *repository.StatsRepo) *DashboardHandler {
	return &DashboardHandler{Stats: s}
}

// GetStats handles GET /api/dashboard/stats.
func (h *DashboardHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	stats, err := h.Stats.Dashboard(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, stats)
}

// RecentFiles handles GET /api/dashboard/recent-files. The limit
// defaults to 5 and is capped at 20.
func (h *DashboardHandler) RecentFiles(c echo.Context) error {
	limit := 5
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > 20 {
		limit = 20
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Stats.RecentFiles(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
