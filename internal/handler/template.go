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
	"github.com/lehoangphuc/notary-office-server/internal/utils"
)

// TemplateHandler serves the contract template catalog: categories,
// templates and placeholder rendering.
type TemplateHandler struct {
	Templates *repository.TemplateRepo
}

func NewTemplateHandler(t *repository.TemplateRepo) *TemplateHandler {
	return &TemplateHandler{Templates: t}
}

// ListCategories handles GET /api/template-categories.
func (h *TemplateHandler) ListCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Templates.ListCategories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// CreateCategory handles POST /api/template-categories (admin only).
func (h *TemplateHandler) CreateCategory(c echo.Context) error {
	var body struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
		SortOrder   int     `json:"sortOrder"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	cat := model.Category{Name: body.Name, Description: body.Description, SortOrder: body.SortOrder}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Templates.CreateCategory(ctx, &cat); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create category failed"})
	}
	return c.JSON(http.StatusCreated, cat)
}

type templateReq struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	CategoryID      *uint64   `json:"categoryId"`
	TemplateContent *string   `json:"templateContent"`
	RequiredFields  *[]string `json:"requiredFields"`
	VariableFields  *[]string `json:"variableFields"`
	IsActive        *bool     `json:"isActive"`
}

func (req *templateReq) applyTo(t *model.Template) {
	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = trimmedOrNil(*req.Description)
	}
	if req.CategoryID != nil {
		if *req.CategoryID == 0 {
			t.CategoryID = nil
		} else {
			t.CategoryID = req.CategoryID
		}
	}
	if req.TemplateContent != nil {
		t.TemplateContent = *req.TemplateContent
	}
	if req.RequiredFields != nil {
		t.RequiredFields = *req.RequiredFields
	}
	if req.VariableFields != nil {
		t.VariableFields = *req.VariableFields
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
}

// Create handles POST /api/templates. The creator is taken from the
// session, never from the body.
func (h *TemplateHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req templateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	t := model.Template{IsActive: true, CreatedBy: uid}
	req.applyTo(&t)
	if t.Name == "" || strings.TrimSpace(t.TemplateContent) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and templateContent are required"})
	}
	if und := utils.UndeclaredTokens(t.TemplateContent, t.RequiredFields, t.VariableFields); len(und) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "templateContent references undeclared fields",
			"fields": und,
		})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Templates.Create(ctx, &t); err != nil {
		if err == repository.ErrCategoryNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create template failed"})
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /api/templates with an optional categoryId filter.
func (h *TemplateHandler) List(c echo.Context) error {
	var categoryID uint64
	if v := c.QueryParam("categoryId"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid categoryId"})
		}
		categoryID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	items, err := h.Templates.List(ctx, categoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /api/templates/:id.
func (h *TemplateHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	t, err := h.Templates.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Update handles PUT /api/templates/:id with a partial body.
func (h *TemplateHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req templateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Templates.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	req.applyTo(&t)
	if t.Name == "" || strings.TrimSpace(t.TemplateContent) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and templateContent are required"})
	}
	if und := utils.UndeclaredTokens(t.TemplateContent, t.RequiredFields, t.VariableFields); len(und) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "templateContent references undeclared fields",
			"fields": und,
		})
	}

	if err := h.Templates.Update(ctx, &t); err != nil {
		switch err {
		case repository.ErrTemplateNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		case repository.ErrCategoryNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update template failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Render handles POST /api/templates/:id/render. It substitutes the
// supplied values into the template body; tokens declared required must
// all be present, other unresolved tokens are left literal.
func (h *TemplateHandler) Render(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Values map[string]string `json:"values"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	t, err := h.Templates.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if missing := utils.MissingRequired(t.RequiredFields, body.Values); len(missing) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "missing required fields",
			"missing": missing,
		})
	}
	rendered, err := utils.RenderTemplate(t.TemplateContent, t.RequiredFields, body.Values)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"content": rendered})
}
