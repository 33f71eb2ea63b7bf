package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/HarishP23/OneStop/internal/logger"
	"github.com/HarishP23/OneStop/internal/utilities"
)

func keyFunc(c *gin.Context) string {
	account, err := utilities.ExtractAccount(c)
	if err != nil {
		return "ip: " + c.ClientIP()
	}
	return "user: " + account.ID.String()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	retryAfter := int(math.Ceil(time.Until(info.ResetTime).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("Retry-After", strconv.Itoa(retryAfter))
	c.AbortWithStatusJSON(http.StatusTooManyRequests, utilities.ErrorResponse{
		Message: "Too many requests. Please try again later.",
	})
}

// RateLimiterMiddleware limits each user, or each client IP before login, to
// reqPerSec requests per second. A nil client keeps counters in memory.
func RateLimiterMiddleware(reqPerSec uint, client *redis.Client) gin.HandlerFunc {
	var store ratelimit.Store
	if client != nil {
		store = newRedisStore(client, time.Second, reqPerSec)
	} else {
		store = ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
			Rate:  time.Second,
			Limit: reqPerSec,
		})
	}

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		KeyFunc:      keyFunc,
		ErrorHandler: errorHandler,
	})
}

// fixed window counter; returns the hit count and the window's remaining ms
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`

type redisStore struct {
	client *redis.Client
	script *redis.Script
	rate   time.Duration
	limit  uint
}

func newRedisStore(client *redis.Client, rate time.Duration, limit uint) *redisStore {
	return &redisStore{
		client: client,
		script: redis.NewScript(rateLimitScript),
		rate:   rate,
		limit:  limit,
	}
}

// Limit fails open when redis is unreachable
func (s *redisStore) Limit(key string, c *gin.Context) ratelimit.Info {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 250*time.Millisecond)
	defer cancel()

	res, err := s.script.Run(ctx, s.client, []string{"onestop:ratelimit:" + key}, s.rate.Milliseconds()).Int64Slice()
	if err != nil || len(res) != 2 {
		logger.WithError(err).Warn("rate limit store unavailable", "key", key)
		return ratelimit.Info{Limit: s.limit, ResetTime: time.Now().Add(s.rate), RemainingHits: s.limit}
	}

	hits := uint(res[0])
	remaining := uint(0)
	if hits < s.limit {
		remaining = s.limit - hits
	}
	return ratelimit.Info{
		Limit:         s.limit,
		RateLimited:   hits > s.limit,
		ResetTime:     time.Now().Add(time.Duration(res[1]) * time.Millisecond),
		RemainingHits: remaining,
	}
}
