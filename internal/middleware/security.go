package middleware

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets response headers for an API that serves no HTML.
// Slot lists go stale as soon as someone books, so nothing is cached.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
