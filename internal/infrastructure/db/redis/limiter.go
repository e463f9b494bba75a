// Package redis backs login throttling with a Redis counter per email.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
	dialTimeout        = 5 * time.Second
)

// Config holds the connection and throttling settings for the login limiter's
// Redis backend.
type Config struct {
	Addr        string
	DB          int
	MaxAttempts int
	Window      time.Duration
}

// Open dials Redis, verifies connectivity with a ping, and returns the limiter
// together with the underlying client for readiness checks and shutdown.
func Open(ctx context.Context, cfg Config) (*LoginLimiter, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewLoginLimiter(client, cfg.MaxAttempts, cfg.Window), client, nil
}

// LoginLimiter throttles login attempts per email using a Redis counter with
// a rolling window. Key format: login_attempts:<email>
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive maxAttempts or window fall back to defaults.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt for the email and reports whether it is still
// under the limit. The window starts at the first attempt and expires whole.
func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := l.key(email)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return n <= int64(l.maxAttempts), nil
}

// Reset clears the counter for an email, called after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, l.key(email)).Err()
}

func (l *LoginLimiter) key(email string) string {
	return "login_attempts:" + email
}
