package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/fortress/user-system/internal/api/handler"
	"github.com/fortress/user-system/internal/api/middleware"
	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

// Dependencies carries everything the router needs, constructed in main.
type Dependencies struct {
	AuthService ports.AuthService
	UserService ports.UserService
	// Throttle may be nil (login throttling disabled).
	Throttle handler.LoginThrottle
	// Readiness holds named dependency checks for /health/ready.
	Readiness map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fortress"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Throttle)
	userHandler := handler.NewUserHandler(deps.UserService)
	authRequired := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/me", authHandler.Me, authRequired)

	// --- User routes ---
	// Route-level RBAC mirrors which roles may reach each endpoint; field-level
	// decisions (self-service, email/role protection) live in the service.
	users := e.Group("/users", authRequired)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create, middleware.RBAC(domain.RolePrincipal))
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Patch)
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RolePrincipal))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
