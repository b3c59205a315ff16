package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per identifier in a fixed window.
// Key format: login:fail:<identifier>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Allow reports whether identifier may attempt a login. After maxAttempts
// failures in the window it returns false.
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(identifier)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle: %w", err)
	}
	return !t.exhausted(n), nil
}

// exhausted reports whether n recorded failures use up the allowance.
func (t *LoginThrottle) exhausted(n int64) bool {
	return n >= t.maxAttempts
}

// Fail records a failed attempt. The window starts at the first failure.
func (t *LoginThrottle) Fail(ctx context.Context, identifier string) error {
	key := t.key(identifier)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login throttle: %w", err)
	}
	return nil
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) error {
	return t.client.Del(ctx, t.key(identifier)).Err()
}

func (t *LoginThrottle) key(identifier string) string {
	return "login:fail:" + strings.ToLower(identifier)
}
