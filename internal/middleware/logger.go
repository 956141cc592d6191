package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger middleware logs HTTP requests
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		// Get status code
		statusCode := c.Writer.Status()

		// Get client IP
		clientIP := c.ClientIP()

		// Get method
		method := c.Request.Method

		// Build query string
		if raw != "" {
			path = path + "?" + raw
		}

		// Attributed user, if any
		user := UserID(c)
		if user == "" {
			user = "-"
		}

		// Log request
		log.Printf("[%s] %s %s user=%s %d %v %s",
			method,
			path,
			clientIP,
			user,
			statusCode,
			latency,
			c.Errors.String(),
		)
	}
}
