package middlewares

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var errTooManyRequests = errors.New("too many requests, please slow down")

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		// Diary responses change with every booking write.
		c.Header("Cache-Control", "no-store")

		c.Next()
	}
}
