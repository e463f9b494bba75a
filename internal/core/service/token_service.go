package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fortress/user-system/internal/core/domain"
)

// TokenKind discriminates the two token families. Each kind is signed with its
// own secret, so a refresh token can never be replayed as an access token.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

const (
	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenConfig enumerates every knob of the token service. Clock is injected so
// tests can control expiry deterministically; it defaults to time.Now.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Clock         func() time.Time
}

// TokenIdentity is the verified identity carried by a token.
type TokenIdentity struct {
	SubjectID int
	Role      domain.Role
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role domain.Role `json:"role"`
	Kind TokenKind   `json:"kind"`
}

// TokenService mints and verifies signed access and refresh tokens. It is
// stateless: verification is a pure function of the configured secrets and
// the clock.
type TokenService struct {
	cfg TokenConfig
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &TokenService{cfg: cfg}
}

// Issue signs a token of the given kind for the subject. The token embeds the
// subject id, role, kind, issue time, and expiry.
func (s *TokenService) Issue(subjectID int, role domain.Role, kind TokenKind) (string, error) {
	secret, ttl, err := s.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := s.cfg.Clock()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(subjectID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
		Kind: kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, expiry, and kind, returning the embedded identity.
// An expired-but-authentic token fails with domain.ErrTokenExpired; anything
// else (bad signature, malformed, wrong kind) fails with domain.ErrTokenInvalid
// so callers can tell "refresh me" apart from "log in again".
func (s *TokenService) Verify(tokenString string, expectedKind TokenKind) (*TokenIdentity, error) {
	secret, _, err := s.kindParams(expectedKind)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Kind != expectedKind {
		return nil, domain.ErrTokenInvalid
	}

	subjectID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	if !claims.Role.Valid() {
		return nil, domain.ErrTokenInvalid
	}

	return &TokenIdentity{SubjectID: subjectID, Role: claims.Role}, nil
}

func (s *TokenService) kindParams(kind TokenKind) (secret string, ttl time.Duration, err error) {
	switch kind {
	case TokenKindAccess:
		return s.cfg.AccessSecret, s.cfg.AccessTTL, nil
	case TokenKindRefresh:
		return s.cfg.RefreshSecret, s.cfg.RefreshTTL, nil
	}
	return "", 0, fmt.Errorf("unknown token kind %q", kind)
}
