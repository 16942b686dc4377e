package serverutils

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per client IP. With a Redis client the limit is a fixed
// window counter shared by every instance; without one each process keeps token buckets.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	window  time.Duration
	buckets *cache.Cache
	rdb     *redis.Client
	prefix  string
}

func NewRateLimiter(rps float64, burst int, window time.Duration, rdb *redis.Client) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if window < time.Second {
		window = time.Minute
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		window:  window,
		buckets: cache.New(3*time.Minute, time.Minute),
		rdb:     rdb,
		prefix:  "ratelimit:",
	}
}

func (rl *RateLimiter) bucket(key string) *rate.Limiter {
	if x, found := rl.buckets.Get(key); found {
		lim := x.(*rate.Limiter)
		rl.buckets.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	if err := rl.buckets.Add(key, lim, cache.DefaultExpiration); err != nil {
		// Lost a race with another request for the same key.
		if x, found := rl.buckets.Get(key); found {
			return x.(*rate.Limiter)
		}
	}
	return lim
}

// windowLimit is the number of requests a window admits.
func (rl *RateLimiter) windowLimit() int64 {
	n := int64(float64(rl.rps)*rl.window.Seconds()) + int64(rl.burst)
	if n < 1 {
		n = 1
	}
	return n
}

func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s%s:%d", rl.prefix, key, time.Now().Unix()/int64(rl.window.Seconds()))
	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= rl.windowLimit(), nil
}

// Allow reports whether key may make another request now.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.rdb != nil {
		ok, err := rl.allowRedis(ctx, key)
		if err == nil {
			return ok
		}
		// Redis unavailable: fall back to the local bucket.
	}
	return rl.bucket(key).Allow()
}

// Handler limits per route and client IP. The key uses the registered route pattern, so case
// and trailing-slash variants of a path share one bucket.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if !rl.Allow(ctx.UserContext(), ctx.Route().Path+"|"+ctx.IP()) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(fiber.StatusTooManyRequests, "too many requests"))
		}
		return ctx.Next()
	}
}
