package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitStore defines the persistence operations required by the middleware.
type RateLimitStore interface {
	TrimWindow(ctx context.Context, identifier string, window time.Duration, reference time.Time) error
	CountAttempts(ctx context.Context, identifier string, window time.Duration, reference time.Time) (int, error)
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	OldestAttempt(ctx context.Context, identifier string, window time.Duration, reference time.Time) (time.Time, bool, error)
}

// RateLimiter enforces sliding-window limits keyed by client IP. A store
// failure lets the request through; throttling is best effort.
type RateLimiter struct {
	store  RateLimitStore
	logger *zap.Logger
	now    func() time.Time
}

func NewRateLimiter(store RateLimitStore, logger *zap.Logger) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RateLimiter{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	if now != nil {
		rl.now = now
	}
	return rl
}

// Limit returns a middleware allowing at most limit requests per window for
// each client IP on the named endpoint.
func (rl *RateLimiter) Limit(name string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.store == nil || limit <= 0 || window <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		now := rl.now()
		key := fmt.Sprintf("%s:%s", name, ip)
		ctx := c.Request.Context()

		if err := rl.store.TrimWindow(ctx, key, window, now); err != nil {
			rl.logger.Warn("rate limit trim failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		count, err := rl.store.CountAttempts(ctx, key, window, now)
		if err != nil {
			rl.logger.Warn("rate limit count failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		if count >= limit {
			retryAfter := window
			if oldest, ok, err := rl.store.OldestAttempt(ctx, key, window, now); err == nil && ok {
				retryAfter = oldest.Add(window).Sub(now)
				if retryAfter < 0 {
					retryAfter = 0
				}
			}

			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
			c.Header("X-RateLimit-Remaining", "0")

			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				newErrorResponse(c, "too many requests, slow down"))
			return
		}

		if err := rl.store.RecordAttempt(ctx, key, now); err != nil {
			rl.logger.Warn("rate limit record failed", zap.String("key", key), zap.Error(err))
		}

		remaining := limit - count - 1
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}
