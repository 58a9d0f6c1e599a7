package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/gin-gonic/gin"
)

// untrackedPrefixes are never sent to PostHog.
var untrackedPrefixes = []string{"/health", "/swagger"}

// PosthogMiddleware records one analytics event per successful authenticated request.
// The event name is built from the method and route template, e.g.
// "POST /api/v1/transactions/:transactionID" becomes "post_transactions_transactionid".
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untracked(c.Request.URL.Path) {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}
		eventName := routeEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"status_code": c.Writer.Status(),
		}
		if filter := c.Query("dateFilter"); filter != "" {
			props["date_filter"] = filter
		}
		posthogClient.Enqueue(userID, eventName, props)
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func routeEventName(method, route string) string {
	route = strings.TrimPrefix(route, "/api/v1")
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	var parts []string
	for _, seg := range strings.Split(route, "/") {
		seg = strings.TrimPrefix(seg, ":")
		if seg != "" {
			parts = append(parts, strings.ToLower(seg))
		}
	}
	return strings.ToLower(method) + "_" + strings.Join(parts, "_")
}
