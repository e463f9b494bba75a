package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fortress/user-system/internal/core/domain"
)

// RBAC enforces a route-level role allow-list. Finer-grained decisions
// (self-service, per-field categories) belong to the authorization policy in
// the service layer; this gate only mirrors which roles may reach a route.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(domain.Role)
			if _, ok := allowed[role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
