// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dompetku/backend/internal/application/adapter"
)

// loginLimiter implements adapter.LoginLimiter with a fixed-window counter
// in Redis: one key per client, incremented per attempt, expiring with the
// window.
type loginLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewLoginLimiter creates a new Redis-backed login limiter.
func NewLoginLimiter(client *redis.Client, limit int64, window time.Duration) adapter.LoginLimiter {
	return &loginLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow records one attempt for the key and reports whether it is within the
// window limit.
func (l *loginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("login_attempts:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to count login attempt: %w", err)
	}

	// First attempt in the window starts its expiry clock.
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set attempt window: %w", err)
		}
	}

	return count <= l.limit, nil
}
