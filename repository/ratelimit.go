package repository

import "context"

// RateLimiter counts hits per key in fixed windows. Hit increments the
// counter for the current window and returns the running count; the
// window length is fixed by the implementation.
type RateLimiter interface {
	Hit(ctx context.Context, key string) (int, error)
}
