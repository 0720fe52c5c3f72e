package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskpress/backend/domain"
	"github.com/taskpress/backend/repository"
)

const rateLimitTimeout = 2 * time.Second

// RateLimit caps hits per client address and path inside the counter's
// fixed window. A broken counter backend fails open.
func RateLimit(hits repository.RateLimiter, max int, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			key := fmt.Sprintf("%s:%s", ctx.Path(), ctx.RemoteIP())

			stdCtx, cancel := context.WithTimeout(context.Background(), rateLimitTimeout)
			count, err := hits.Hit(stdCtx, key)
			cancel()
			if err != nil {
				logger.Warn("rate limit counter failed", zap.Error(err))
				next(ctx)
				return
			}

			if count > max {
				logger.Debug("request rate limited",
					zap.String("path", string(ctx.Path())),
					zap.Int("count", count))
				reject(ctx, domain.ErrRateLimited)
				return
			}
			next(ctx)
		}
	}
}
