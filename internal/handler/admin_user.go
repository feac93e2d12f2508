package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/config"
	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// AdminUserHandler serves the admin user console. Every route it owns
// sits behind the admin role middleware.
type AdminUserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAdminUserHandler(cfg config.Config, u *repository.UserRepo) *AdminUserHandler {
	return &AdminUserHandler{Cfg: cfg, Users: u}
}

// List handles GET /api/admin/users.
func (h *AdminUserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// Create handles POST /api/admin/users.
func (h *AdminUserHandler) Create(c echo.Context) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Username == "" || req.Email == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and fullName are required"})
	}
	if len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 8 characters"})
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}
	if req.Role != model.RoleAdmin && req.Role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	id, err := h.Users.Create(ctx, req.Username, req.Email, req.Password, req.FullName, req.Role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUserExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username or email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /api/admin/users/:id, changing role and active
// flag. An admin cannot deactivate or demote their own account.
func (h *AdminUserHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Role     *string `json:"role"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	role := u.Role
	if req.Role != nil {
		role = *req.Role
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or user"})
	}
	isActive := u.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	if id == uid && (!isActive || role != model.RoleAdmin) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot demote or deactivate your own account"})
	}

	if err := h.Users.UpdateAdminFields(ctx, id, role, isActive); err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}

	u, err = h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, u)
}
