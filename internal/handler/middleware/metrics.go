package middleware

import (
	"strconv"

	"resione-server/internal/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware counts requests per route template so path cardinality
// stays bounded.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.IncHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()))
	}
}
