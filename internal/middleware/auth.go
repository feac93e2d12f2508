package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lehoangphuc/notary-office-server/internal/repository"
	"github.com/lehoangphuc/notary-office-server/internal/utils"
)

// Context keys populated by SessionAuth for downstream handlers.
const (
	CtxUserID    = "user_id"
	CtxRole      = "role"
	CtxSessionID = "session_id"
)

// SessionAuth returns a middleware that validates a Bearer access token
// and the session row it references. Both checks must pass: the JWT
// signature/expiry, and the presence of an unexpired user_sessions row
// for the token's sid claim. The second check makes logout effective
// immediately instead of waiting for the token to expire.
//
// The token travels in the Authorization header only; the cookie
// transport of earlier iterations of this system is gone.
func SessionAuth(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			sess, err := sessions.Get(ctx, claims.SessionID)
			if err != nil {
				if err == repository.ErrSessionNotFound {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "session expired"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "session lookup failed"})
			}
			if sess.UserID != claims.UserID {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxSessionID, claims.SessionID)
			return next(c)
		}
	}
}
