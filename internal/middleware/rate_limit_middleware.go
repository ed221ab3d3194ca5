package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimitConfig holds the settings of one limit
type RateLimitConfig struct {
	// MaxRequests allowed per Window
	MaxRequests int
	Window      time.Duration
	// KeyPrefix namespaces the Redis counters
	KeyPrefix string
}

// SubmitRateLimitConfig limits assessment submissions
func SubmitRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{MaxRequests: maxRequests, Window: window, KeyPrefix: "rl:submit"}
}

// AuthRateLimitConfig limits login and registration attempts
func AuthRateLimitConfig(maxRequests int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{MaxRequests: maxRequests, Window: window, KeyPrefix: "rl:auth"}
}

// RateLimiter is a fixed-window limiter backed by Redis INCR/EXPIRE
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter creates a RateLimiter
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// Limit keys the counter by client IP and route pattern
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return rl.limit(cfg, func(c *gin.Context) string {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, c.ClientIP(), path)
	})
}

// LimitByUser keys the counter by the authenticated user; must run after RequireAuth
func (rl *RateLimiter) LimitByUser(cfg RateLimitConfig) gin.HandlerFunc {
	return rl.limit(cfg, func(c *gin.Context) string {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			userID = "ip:" + c.ClientIP()
		}
		return fmt.Sprintf("%s:%s", cfg.KeyPrefix, userID)
	})
}

func (rl *RateLimiter) limit(cfg RateLimitConfig, keyFn func(c *gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFn(c)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := rl.redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail-open
			log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request.", key, err)
			c.Next()
			return
		}

		// First hit in the window starts the clock.
		if count == 1 {
			if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
				log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
			}
		}

		remaining := cfg.MaxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		ttl, _ := rl.redisClient.TTL(ctx, key).Result()
		retryAfter := int(ttl.Seconds())
		if retryAfter < 0 {
			retryAfter = int(cfg.Window.Seconds())
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

		if int(count) > cfg.MaxRequests {
			log.Printf("[RateLimiter] limit exceeded for key=%s count=%d limit=%d", key, count, cfg.MaxRequests)
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
