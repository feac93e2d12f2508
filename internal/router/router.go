// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lehoangphuc/notary-office-server/internal/config"
	"github.com/lehoangphuc/notary-office-server/internal/handler"
	"github.com/lehoangphuc/notary-office-server/internal/middleware"
	"github.com/lehoangphuc/notary-office-server/internal/model"
	"github.com/lehoangphuc/notary-office-server/internal/repository"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Party     *handler.PartyHandler
	Asset     *handler.AssetHandler
	Template  *handler.TemplateHandler
	File      *handler.FileHandler
	Dashboard *handler.DashboardHandler
	AdminUser *handler.AdminUserHandler
	Seed      *handler.SeedHandler
}

// RegisterRoutes registers routes that do not require authentication.
// The health check can be used by load balancers or monitoring systems
// to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the full /api surface. Login and seed stay
// outside the session group; everything else requires a valid token
// whose session row still exists. Admin-only routes additionally pass
// through the role middleware. When Redis is reachable, login gets a
// token-bucket rate limiter and the dashboard reads get a short-lived
// response cache; with rdb == nil both middlewares are skipped and the
// routes serve uncached and unthrottled.
func RegisterAPI(e *echo.Echo, cfg config.Config, h Handlers, sessions *repository.SessionRepo, rdb *redis.Client) {
	api := e.Group("/api")

	// Unauthenticated: login and the one-shot seed endpoint. Seed
	// guards itself by refusing to run on a non-empty database.
	login := api.Group("/auth")
	if rdb != nil {
		login.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}
	login.POST("/login", h.Auth.Login)
	api.POST("/seed", h.Seed.Seed)

	// Everything below requires a live session.
	auth := api.Group("")
	auth.Use(middleware.SessionAuth(cfg.JWTSecret, sessions))

	auth.POST("/auth/logout", h.Auth.Logout)
	auth.GET("/auth/me", h.Auth.Me)

	auth.POST("/parties", h.Party.Create)
	auth.GET("/parties", h.Party.List)
	auth.GET("/parties/:id", h.Party.Get)
	auth.PUT("/parties/:id", h.Party.Update)

	auth.POST("/assets", h.Asset.Create)
	auth.GET("/assets", h.Asset.List)
	auth.GET("/assets/:id", h.Asset.Get)
	auth.PUT("/assets/:id", h.Asset.Update)

	auth.GET("/template-categories", h.Template.ListCategories)
	auth.POST("/template-categories", h.Template.CreateCategory, middleware.RequireRole(model.RoleAdmin))
	auth.POST("/templates", h.Template.Create)
	auth.GET("/templates", h.Template.List)
	auth.GET("/templates/:id", h.Template.Get)
	auth.PUT("/templates/:id", h.Template.Update)
	auth.POST("/templates/:id/render", h.Template.Render)

	auth.POST("/files", h.File.Create)
	auth.GET("/files", h.File.List)
	auth.GET("/files/:id", h.File.Get)
	auth.PATCH("/files/:id/status", h.File.UpdateStatus)
	auth.PATCH("/files/:id/payment", h.File.UpdatePayment)

	dash := auth.Group("/dashboard")
	if rdb != nil {
		dash.Use(middleware.NewResponseCache(config.LoadCacheConfig(), rdb))
	}
	dash.GET("/stats", h.Dashboard.GetStats)
	dash.GET("/recent-files", h.Dashboard.RecentFiles)

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", h.AdminUser.List)
	admin.POST("/users", h.AdminUser.Create)
	admin.PUT("/users/:id", h.AdminUser.Update)
}
