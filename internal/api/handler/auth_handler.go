package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fortress/user-system/internal/api/metrics"
	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

// LoginThrottle limits repeated login attempts per email. A nil throttle
// disables throttling.
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	Reset(ctx context.Context, email string) error
}

type AuthHandler struct {
	authService ports.AuthService
	throttle    LoginThrottle
}

func NewAuthHandler(authService ports.AuthService, throttle LoginThrottle) *AuthHandler {
	return &AuthHandler{authService: authService, throttle: throttle}
}

// loginRequest accepts both the JSON body and the classic OAuth2 password
// form, where the username field carries the email.
type loginRequest struct {
	Email    string `json:"email" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
	Role         string `json:"role,omitempty"`
}

// Login authenticates a user and returns an access/refresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/token [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if h.throttle != nil {
		allowed, err := h.throttle.Allow(ctx, req.Email)
		if err != nil {
			return err
		}
		if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		}
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	if h.throttle != nil {
		_ = h.throttle.Reset(ctx, req.Email)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		TokenType:    result.TokenType,
		Role:         string(result.Role),
	})
}

// Refresh exchanges a valid refresh token for a fresh access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenExpired):
			metrics.TokenRefreshesTotal.WithLabelValues("expired").Inc()
		case errors.Is(err, domain.ErrTokenInvalid):
			metrics.TokenRefreshesTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated caller's own account.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
