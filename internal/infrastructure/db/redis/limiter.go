package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 10
	defaultWindow = time.Minute
)

// FixedWindowLimiter counts attempts per key in fixed windows.
// Key format: ratelimit:<key>
type FixedWindowLimiter struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter allows up to limit attempts per window for each key.
func NewFixedWindowLimiter(client redis.Cmdable, limit int, window time.Duration) *FixedWindowLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &FixedWindowLimiter{client: client, limit: int64(limit), window: window}
}

// Allow records one attempt and reports whether it is within the limit.
// The window starts at the first attempt; INCR and EXPIRE NX run in one
// transaction so a counter never outlives its window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, l.key(key))
		pipe.ExpireNX(ctx, l.key(key), l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// Window is the length of one counting window.
func (l *FixedWindowLimiter) Window() time.Duration {
	return l.window
}

func (l *FixedWindowLimiter) key(key string) string {
	return "ratelimit:" + key
}
