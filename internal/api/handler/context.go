package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

// ctxActor extracts the caller identity injected by the Auth middleware.
// A missing or zero identity means the middleware did not run on this route.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get("user_id").(int)
	role, _ := c.Get("role").(domain.Role)
	if id == 0 || !role.Valid() {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: role}, nil
}
