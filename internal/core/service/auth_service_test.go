package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortress/user-system/internal/core/domain"
)

func newTestAuthService(repo *stubUserRepo) (*AuthService, *TokenService) {
	tokens := newTestTokenService(nil)
	return NewAuthService(repo, tokens, stubHasher{}, discardLogger), tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo(seedPrincipal(), seedWorker())
	svc, tokens := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", result.TokenType)
	}
	if result.Role != domain.RoleWorker {
		t.Fatalf("expected role worker, got %s", result.Role)
	}

	identity, err := tokens.Verify(result.AccessToken, TokenKindAccess)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if identity.SubjectID != 2 || identity.Role != domain.RoleWorker {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	if _, err := tokens.Verify(result.RefreshToken, TokenKindRefresh); err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo(seedWorker())
	svc, _ := newTestAuthService(repo)

	// Wrong secret on an existing account and a nonexistent email must be
	// indistinguishable.
	_, wrongSecret := svc.Login(context.Background(), "wendy@fortress.dev", "nope-nope")
	_, noAccount := svc.Login(context.Background(), "ghost@fortress.dev", "whatever")

	if !errors.Is(wrongSecret, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong secret: expected ErrInvalidCredentials, got %v", wrongSecret)
	}
	if !errors.Is(noAccount, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", noAccount)
	}
	if wrongSecret.Error() != noAccount.Error() {
		t.Fatalf("error shapes differ: %q vs %q", wrongSecret, noAccount)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	repo := newStubUserRepo(seedWorker())
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Login(context.Background(), "", "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "wendy@fortress.dev", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Refresh_ReReadsRole(t *testing.T) {
	repo := newStubUserRepo(seedPrincipal(), seedWorker())
	svc, tokens := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Demote the worker after the refresh token was issued.
	demoted := seedWorker()
	demoted.Role = domain.RoleUser
	if err := repo.Update(context.Background(), demoted); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	accessToken, err := svc.Refresh(context.Background(), result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	identity, err := tokens.Verify(accessToken, TokenKindAccess)
	if err != nil {
		t.Fatalf("refreshed token invalid: %v", err)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("expected demotion to apply on refresh, got role %s", identity.Role)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	repo := newStubUserRepo(seedWorker())
	svc, _ := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.AccessToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access-as-refresh, got %v", err)
	}
}

func TestAuthService_Refresh_SubjectDeleted(t *testing.T) {
	repo := newStubUserRepo(seedWorker())
	svc, _ := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), result.RefreshToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	repo := newStubUserRepo(seedPrincipal(), seedWorker())
	svc, _ := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "root@fortress.dev", "rootsecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("currentUser failed: %v", err)
	}
	if user.ID != 1 || user.Role != domain.RolePrincipal {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_CurrentUser_SubjectDeleted(t *testing.T) {
	repo := newStubUserRepo(seedWorker())
	svc, _ := newTestAuthService(repo)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := repo.Delete(context.Background(), 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.CurrentUser(context.Background(), result.AccessToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_CurrentUser_ExpiredToken(t *testing.T) {
	now := time.Now()
	tokens := newTestTokenService(func() time.Time { return now })
	repo := newStubUserRepo(seedWorker())
	svc := NewAuthService(repo, tokens, stubHasher{}, discardLogger)

	result, err := svc.Login(context.Background(), "wendy@fortress.dev", "workersecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	now = now.Add(31 * time.Minute)
	if _, err := svc.CurrentUser(context.Background(), result.AccessToken); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
