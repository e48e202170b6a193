package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mileusna/useragent"
)

// RequestTracingMiddleware assigns a request id and logs the client
// device for correlation.
func RequestTracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		if ua := c.Request.UserAgent(); ua != "" {
			parsed := useragent.Parse(ua)
			log.Printf("[%s] %s %s from %s %s on %s",
				requestID, c.Request.Method, c.Request.URL.Path,
				parsed.Name, parsed.Version, parsed.OS)
		}

		c.Next()
	}
}
