package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/promptfinder/core/internal/pkg/response"
)

// RequireAPIKey guards operator endpoints with a static bearer key.
// When no key is configured the endpoints are disabled entirely.
func RequireAPIKey(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			response.Forbidden(c)
			return
		}

		got := c.GetHeader("X-API-Key")
		if got == "" {
			auth := c.GetHeader("Authorization")
			got = strings.TrimPrefix(auth, "Bearer ")
		}

		if subtle.ConstantTimeCompare([]byte(got), []byte(apiKey)) != 1 {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// hasAPICredentials reports whether the request carries any operator
// credential header. It does not validate the key, it only distinguishes
// operator traffic from anonymous traffic for caching and rate limiting.
func hasAPICredentials(c *gin.Context) bool {
	if c.GetHeader("X-API-Key") != "" {
		return true
	}
	return strings.HasPrefix(c.GetHeader("Authorization"), "Bearer ")
}
