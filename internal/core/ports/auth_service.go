package ports

import (
	"context"

	"github.com/fortress/user-system/internal/core/domain"
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Role         domain.Role
}

// AuthService authenticates callers and resolves token bearers to live
// accounts. It is the sole component that inspects tokens.
type AuthService interface {
	Login(ctx context.Context, email, secret string) (*LoginResult, error)
	// Refresh re-issues a short-lived access token from a valid refresh token.
	// The role is re-read from the store, so a role change takes effect on the
	// next refresh rather than at expiry of the old access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}
