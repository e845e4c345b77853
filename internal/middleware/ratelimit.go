package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/handler"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
	// IdleTTL is how long an idle client's bucket is kept.
	IdleTTL time.Duration
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients *cache.Cache
	limit   rate.Limit
	burst   int
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	ttl := config.IdleTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	burst := config.Burst
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		clients: cache.New(ttl, 2*ttl),
		limit:   rate.Limit(config.RPS),
		burst:   burst,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.clients.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.clients.SetDefault(key, l)
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.clients.SetDefault(key, l)
	return l
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, handler.NewErrorResponse("rate limit exceeded"))
			return
		}
		c.Next()
	}
}
