package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velora/storefront/internal/infra/telemetry"
)

// Metrics records request counts and latency per route.
func Metrics(provider *telemetry.Provider) gin.HandlerFunc {
	if provider == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		provider.ObserveRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
