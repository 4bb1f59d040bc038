package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"github.com/Jakablaque/AquaLink-A-Real-Time-Community-Water-Point-Monitoring-and-Reporting-System/internal/limiter"
)

// RateLimit guards a route with the fixed-window limit for action, keyed by
// client IP. A nil limiter lets every request through, and so does a counter
// failure.
func RateLimit(l *limiter.Limiter, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		result, err := l.Check(c.Request.Context(), clientIP, action)
		if err != nil {
			log.WithError(err).WithField("action", action).Warn("rate limit check failed, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			RecordRateLimited(action)
			log.WithFields(log.Fields{
				"client": clientIP,
				"action": action,
			}).Warn("rate limit exceeded")

			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
