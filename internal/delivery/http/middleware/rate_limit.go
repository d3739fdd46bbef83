package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"
	"childcare-cv-backend/pkg/logger"
	"childcare-cv-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	// KeyFunc extracts the client key (default: IP)
	KeyFunc func(*gin.Context) string
	// KeyPrefix namespaces the counters in Redis and in memory
	KeyPrefix string
	// FailClosed rejects requests when Redis errors instead of falling back to memory
	FailClosed bool
}

// windowCounter is the in-memory fallback entry.
type windowCounter struct {
	count   int
	resetAt time.Time
}

var (
	// Entries expire with their window; go-cache janitor sweeps them every minute.
	fallbackCounters = cache.New(time.Minute, time.Minute)
	fallbackMu       sync.Mutex
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// userOrIPKey prefers the authenticated user so shared NATs do not share quotas.
func userOrIPKey(c *gin.Context) string {
	if userID := c.GetString(string(domain.KeyUserID)); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

// PublicProfileRateLimitConfig limits anonymous reads of public CV pages per IP.
func PublicProfileRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:public:",
		KeyFunc:   clientIPKey,
	}
}

// UploadRateLimitConfig limits file uploads per user.
func UploadRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:upload:",
		KeyFunc:   userOrIPKey,
	}
}

// RateLimitMiddleware uses Redis when available and falls back to in-memory counters.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	if config.Window <= 0 {
		config.Window = time.Minute
	}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		log := logger.FromContext(c.Request.Context())

		var count int
		var resetAt time.Time

		if redisClient := redis.Client(); redisClient != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				log.Warn("Rate limit store error", zap.String("key", fullKey), zap.Error(err))
				if config.FailClosed {
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", nil)
					c.Abort()
					return
				}
				count, resetAt = checkRateLimitInMemory(fullKey, config, time.Now())
			}
		} else {
			count, resetAt = checkRateLimitInMemory(fullKey, config, time.Now())
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			log.Warn("Rate limit triggered",
				zap.String("key", fullKey),
				zap.String("path", c.FullPath()),
				zap.String("client_ip", c.ClientIP()))

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(config.Limit-count, 0)))
		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// checkRateLimitInMemory is the fixed-window fallback used without Redis.
func checkRateLimitInMemory(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	fallbackMu.Lock()
	defer fallbackMu.Unlock()

	entry := windowCounter{resetAt: now.Add(config.Window)}
	if v, found := fallbackCounters.Get(key); found {
		if existing := v.(windowCounter); now.Before(existing.resetAt) {
			entry = existing
		}
	}
	entry.count++

	fallbackCounters.Set(key, entry, entry.resetAt.Sub(now))
	return entry.count, entry.resetAt
}
