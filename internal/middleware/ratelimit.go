package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"gig-copilot/pkg/response"
)

// KeyFunc picks the rate limit key for a request. An empty key is not limited.
type KeyFunc func(c *gin.Context) string

// RateLimit rejects requests above the per-key rate with 429.
func (m Middleware) RateLimit(key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			c.Next()
			return
		}
		if !m.limiter(k).Allow() {
			m.l.Warnf(c.Request.Context(), "%s: rate limited %s", logPrefixRateLimit, k)
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// limiter returns the key's limiter. Concurrent first requests may each
// create one; the last stored wins, which at worst grants one extra burst.
func (m Middleware) limiter(key string) *rate.Limiter {
	if lim, ok := m.limiters.Get(key); ok {
		return lim
	}
	lim := rate.NewLimiter(m.limit, m.burst)
	m.limiters.Add(key, lim)
	return lim
}

// ClientIP keys requests by remote address.
func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}
