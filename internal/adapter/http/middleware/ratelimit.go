package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"finance-ledger/pkg/apperror"
	"finance-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimitRule is a token bucket: RPS tokens per second, up to Burst at once.
// A zero RPS disables limiting.
type RateLimitRule struct {
	RPS   float64
	Burst int
}

// Enabled reports whether the rule limits anything.
func (r RateLimitRule) Enabled() bool {
	return r.RPS > 0 && r.Burst > 0
}

// RateLimiter throttles API calls per client IP. Idle buckets expire after ten minutes.
func RateLimiter(rule RateLimitRule) gin.HandlerFunc {
	if !rule.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	buckets := cache.New(10*time.Minute, 10*time.Minute)
	var mu sync.Mutex

	bucket := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if v, ok := buckets.Get(key); ok {
			buckets.SetDefault(key, v)
			return v.(*rate.Limiter)
		}
		l := rate.NewLimiter(rate.Limit(rule.RPS), rule.Burst)
		buckets.SetDefault(key, l)
		return l
	}

	return func(c *gin.Context) {
		l := bucket(c.ClientIP())
		c.Header("X-RateLimit-Limit", strconv.Itoa(rule.Burst))

		if !l.Allow() {
			retryAfter := int(math.Ceil(1 / rule.RPS))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
