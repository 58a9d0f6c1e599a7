package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit throttles a route per client IP. Exhausted clients get 429 and a
// Retry-After header in seconds.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		lctx, err := l.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Rate limit store unavailable", slog.String("key", key), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			wait := time.Until(time.Unix(lctx.Reset, 0))
			if wait < time.Second {
				wait = time.Second
			}
			c.Header("Retry-After", strconv.Itoa(int(wait.Round(time.Second)/time.Second)))
			logger.Warn("Rate limit exceeded", slog.String("key", key), slog.Int64("limit", lctx.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
