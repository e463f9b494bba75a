package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fortress/user-system/internal/core/ports"
)

// Auth extracts the bearer token, resolves it to a live account through the
// auth service (the sole token verifier in the system), and injects the
// caller's identity into the request context.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.CurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set("user_id", user.ID)
			c.Set("role", user.Role)
			c.Set("user", user)

			return next(c)
		}
	}
}
