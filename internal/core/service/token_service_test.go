package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fortress/user-system/internal/core/domain"
)

func newTestTokenService(clock func() time.Time) *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
		Clock:         clock,
	})
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(nil)

	for _, kind := range []TokenKind{TokenKindAccess, TokenKindRefresh} {
		token, err := svc.Issue(42, domain.RoleWorker, kind)
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", kind, err)
		}

		identity, err := svc.Verify(token, kind)
		if err != nil {
			t.Fatalf("Verify(%s) returned error: %v", kind, err)
		}
		if identity.SubjectID != 42 {
			t.Fatalf("expected subject 42, got %d", identity.SubjectID)
		}
		if identity.Role != domain.RoleWorker {
			t.Fatalf("expected role worker, got %s", identity.Role)
		}
	}
}

func TestTokenService_Expired(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	svc := newTestTokenService(clock)

	token, err := svc.Issue(1, domain.RolePrincipal, TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Still valid just before expiry.
	now = now.Add(29 * time.Minute)
	if _, err := svc.Verify(token, TokenKindAccess); err != nil {
		t.Fatalf("expected valid token before expiry, got %v", err)
	}

	// Expired after the TTL.
	now = now.Add(2 * time.Minute)
	if _, err := svc.Verify(token, TokenKindAccess); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_Tampered(t *testing.T) {
	svc := newTestTokenService(nil)

	token, err := svc.Issue(1, domain.RoleUser, TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := svc.Verify(tampered, TokenKindAccess); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	if _, err := svc.Verify("not-a-token", TokenKindAccess); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for malformed token, got %v", err)
	}
}

func TestTokenService_KindMismatch(t *testing.T) {
	svc := newTestTokenService(nil)

	refresh, err := svc.Issue(7, domain.RoleUser, TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// A refresh token must not be accepted where an access token is expected:
	// the secrets differ, so verification fails at the signature.
	if _, err := svc.Verify(refresh, TokenKindAccess); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for refresh-as-access, got %v", err)
	}

	access, err := svc.Issue(7, domain.RoleUser, TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(access, TokenKindRefresh); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for access-as-refresh, got %v", err)
	}
}

func TestTokenService_KindCheckWithSharedSecrets(t *testing.T) {
	// Even with identical secrets the embedded kind claim still rejects a
	// cross-kind replay.
	svc := NewTokenService(TokenConfig{
		AccessSecret:  "same",
		RefreshSecret: "same",
	})

	refresh, err := svc.Issue(7, domain.RoleUser, TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(refresh, TokenKindAccess); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
