package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/fortress/user-system/internal/core/domain"
	"github.com/fortress/user-system/internal/core/ports"
)

// AuthService implements login, token refresh, and current-user resolution.
type AuthService struct {
	repo   ports.UserRepository
	tokens *TokenService
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hasher: hasher, logger: logger}
}

// Login verifies the credentials and mints an access/refresh token pair.
// A missing account and a wrong secret both fail with the same
// domain.ErrInvalidCredentials so the response never leaks whether the email
// exists.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*ports.LoginResult, error) {
	if email == "" || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		s.logger.Info().Int("user_id", user.ID).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID, user.Role, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user.ID, user.Role, TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("user_id", user.ID).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		Role:         user.Role,
	}, nil
}

// Refresh verifies the refresh token and mints a fresh access token. The role
// comes from the live record, not the old token, so a demotion applies on the
// next refresh. A deleted subject fails with domain.ErrUserNotFound.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	identity, err := s.tokens.Verify(refreshToken, TokenKindRefresh)
	if err != nil {
		return "", err
	}

	user, err := s.repo.FindByID(ctx, identity.SubjectID)
	if err != nil {
		return "", err
	}

	return s.tokens.Issue(user.ID, user.Role, TokenKindAccess)
}

// CurrentUser resolves an access token to the live account it identifies.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	identity, err := s.tokens.Verify(accessToken, TokenKindAccess)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, identity.SubjectID)
}
