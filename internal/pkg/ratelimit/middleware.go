package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
)

// KeyFunc derives the limiter key for a request
type KeyFunc func(c *gin.Context) string

// ByScope keys requests by scope and client IP
func ByScope(scope Scope) KeyFunc {
	return func(c *gin.Context) string {
		return string(scope) + ":" + c.ClientIP()
	}
}

// Scoped limits each client separately within scope
func Scoped(limiter *RateLimiter, scope Scope) gin.HandlerFunc {
	return CustomKeyMiddleware(limiter, ByScope(scope))
}

// CustomKeyMiddleware limits requests by the key keyFunc returns. An empty
// key falls back to the client IP.
func CustomKeyMiddleware(limiter *RateLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := keyFunc(c)
		if key == "" {
			key = c.ClientIP()
		}

		d := limiter.Take(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		c.Header("X-RateLimit-Reset", d.ResetAt.Format(time.RFC3339))

		if !d.Allowed {
			retryAfter := int(time.Until(d.ResetAt).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			response.ErrorWithData(c, http.StatusTooManyRequests, "Rate limit exceeded. Try again later.", "RATE_LIMITED", gin.H{
				"retry_after": strconv.Itoa(retryAfter) + "s",
				"reset_time":  d.ResetAt.Format(time.RFC3339),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
