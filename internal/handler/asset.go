package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// AssetHandler serves the asset registry endpoints.
type AssetHandler struct {
	Assets *repository.AssetRepo
}

func NewAssetHandler(a *repository.AssetRepo) *AssetHandler { return &AssetHandler{Assets: a} }

type assetReq struct {
	Type              *string `json:"type"`
	Name              *string `json:"name"`
	Location          *string `json:"location"`
	AreaM2            *string `json:"areaM2"`
	CertificateNumber *string `json:"certificateNumber"`
	CertificateIssuer *string `json:"certificateIssuer"`
	CertificateDate   *string `json:"certificateDate"` // YYYY-MM-DD
	MarketValueVND    *int64  `json:"marketValueVnd"`
	OwnerID           *uint64 `json:"ownerId"`
	Notes             *string `json:"notes"`
}

func (req *assetReq) applyTo(a *model.Asset) error {
	if req.Type != nil {
		a.Type = strings.TrimSpace(*req.Type)
	}
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		a.Location = trimmedOrNil(*req.Location)
	}
	if req.AreaM2 != nil {
		if s := strings.TrimSpace(*req.AreaM2); s == "" {
			a.AreaM2 = nil
		} else {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				return err
			}
			a.AreaM2 = &s
		}
	}
	if req.CertificateNumber != nil {
		a.CertificateNumber = trimmedOrNil(*req.CertificateNumber)
	}
	if req.CertificateIssuer != nil {
		a.CertificateIssuer = trimmedOrNil(*req.CertificateIssuer)
	}
	if req.CertificateDate != nil {
		if s := strings.TrimSpace(*req.CertificateDate); s == "" {
			a.CertificateDate = nil
		} else {
			if _, err := time.Parse("2006-01-02", s); err != nil {
				return err
			}
			a.CertificateDate = &s
		}
	}
	if req.MarketValueVND != nil {
		if *req.MarketValueVND < 0 {
			a.MarketValueVND = nil
		} else {
			a.MarketValueVND = req.MarketValueVND
		}
	}
	if req.OwnerID != nil {
		if *req.OwnerID == 0 {
			a.OwnerID = nil
		} else {
			a.OwnerID = req.OwnerID
		}
	}
	if req.Notes != nil {
		a.Notes = trimmedOrNil(*req.Notes)
	}
	return nil
}

// Create handles POST /api/assets.
func (h *AssetHandler) Create(c echo.Context) error {
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var a model.Asset
	if err := req.applyTo(&a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area or certificate date"})
	}
	if a.Type == "" || a.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and name are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Assets.Create(ctx, &a); err != nil {
		if err == repository.ErrOwnerNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner party not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create asset failed"})
	}
	return c.JSON(http.StatusCreated, a)
}

// List handles GET /api/assets with search, type/owner filters and pagination.
func (h *AssetHandler) List(c echo.Context) error {
	page, limit := parsePagination(c)
	q := repository.AssetSearchQuery{
		Search: c.QueryParam("search"),
		Type:   strings.TrimSpace(c.QueryParam("type")),
		Page:   page,
		Limit:  limit,
	}
	if v, err := strconv.ParseUint(c.QueryParam("ownerId"), 10, 64); err == nil {
		q.OwnerID = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, total, err := h.Assets.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":      items,
		"pagination": newPagination(page, limit, total),
	})
}

// Get handles GET /api/assets/:id.
func (h *AssetHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	a, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrAssetNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, a)
}

// Update handles PUT /api/assets/:id with a partial body.
func (h *AssetHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	a, err := h.Assets.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrAssetNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if err := req.applyTo(&a); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid area or certificate date"})
	}
	if a.Type == "" || a.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "type and name are required"})
	}

	if err := h.Assets.Update(ctx, &a); err != nil {
		switch err {
		case repository.ErrAssetNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "asset not found"})
		case repository.ErrOwnerNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner party not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update asset failed"})
	}
	return c.JSON(http.StatusOK, a)
}
