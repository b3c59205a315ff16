package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stargazers/stargazing-api/internal/infrastructure/config"
)

const (
	defaultTimeout  = 500 * time.Millisecond
	defaultPoolSize = 10
)

// clientOptions builds the options for the login throttle client. Every
// command sits on the login path, so timeouts are short and a command is
// retried at most once before the throttle fails open.
func clientOptions(cfg config.RedisConfig) *redis.Options {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}

	return &redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     poolSize,
		PoolTimeout:  timeout,
		MaxRetries:   1,
	}
}

// Connect opens the throttle client and pings it. A Redis that is enabled
// but unreachable at startup is a configuration error.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts := clientOptions(cfg)
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
