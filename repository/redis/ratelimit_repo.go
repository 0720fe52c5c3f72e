package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskpress/backend/repository"
)

type rateLimitRepository struct {
	client *redislib.Client
	prefix string
	window time.Duration
}

// NewRateLimitRepository creates a Redis-backed fixed-window hit counter.
// The window starts at the first hit for a key and resets when the key
// expires.
func NewRateLimitRepository(client *redislib.Client, window time.Duration) repository.RateLimiter {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &rateLimitRepository{
		client: client,
		prefix: "ratelimit:",
		window: window,
	}
}

func (r *rateLimitRepository) Hit(ctx context.Context, key string) (int, error) {
	full := r.key(key)

	count, err := r.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, full, r.window).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

func (r *rateLimitRepository) key(id string) string {
	return fmt.Sprintf("%s%s", r.prefix, id)
}
