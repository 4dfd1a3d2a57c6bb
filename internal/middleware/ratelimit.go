// File: internal/middleware/ratelimit.go
package middleware

import (
	"sync"
	"time"

	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// ClientRateLimiter hands out one token bucket per client IP. A bucket idle for a whole interval
// is full again, so it is evicted and recreated on the client's next request.
type ClientRateLimiter struct {
	mu      sync.Mutex
	clients *cache.Cache
	limit   rate.Limit
	burst   int
}

// NewClientRateLimiter returns nil when limiting is disabled (requests or interval <= 0).
func NewClientRateLimiter(requests int, interval time.Duration) *ClientRateLimiter {
	if requests <= 0 || interval <= 0 {
		return nil
	}
	perRequest := interval / time.Duration(requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}
	return &ClientRateLimiter{
		clients: cache.New(interval, interval),
		limit:   rate.Every(perRequest),
		burst:   requests,
	}
}

// Allow reports whether client may make another request now.
func (l *ClientRateLimiter) Allow(client string) bool {
	l.mu.Lock()
	limiter, ok := l.lookup(client)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
	}
	// every request pushes the eviction deadline back
	l.clients.SetDefault(client, limiter)
	l.mu.Unlock()
	return limiter.Allow()
}

// Clients returns how many buckets are held, including ones awaiting eviction.
func (l *ClientRateLimiter) Clients() int {
	return l.clients.ItemCount()
}

func (l *ClientRateLimiter) lookup(client string) (*rate.Limiter, bool) {
	v, found := l.clients.Get(client)
	if !found {
		return nil, false
	}
	limiter, ok := v.(*rate.Limiter)
	return limiter, ok
}

// RateLimit applies RATE_LIMIT_REQUESTS per RATE_LIMIT_INTERVAL_SECONDS to every client IP.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	limiter := NewClientRateLimiter(cfg.RateLimitRequests, cfg.RateLimitInterval)
	return func(c *gin.Context) {
		if limiter != nil && !limiter.Allow(c.ClientIP()) {
			common.Respond(c, common.ErrTooManyRequests.Response())
			return
		}
		c.Next()
	}
}
