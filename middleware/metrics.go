package middleware

import (
	"strconv"
	"time"

	"keeper/utils"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware records basic HTTP metrics per request.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		utils.ActiveRequests.Inc()
		defer utils.ActiveRequests.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		utils.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		utils.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}
