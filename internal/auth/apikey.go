package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// userCtxKey is the Gin context key used to store the authenticated username.
const userCtxKey = "username"

// APIKeyMiddleware authenticates requests by mapping X-API-Key → username.
// The original password/cookie login flow is deliberately out of scope of
// this service; keys would typically come from IAM or a secret manager.
func APIKeyMiddleware(keys map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader("X-API-Key"))
		username, ok := keys[apiKey]
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(userCtxKey, username)
		c.Next()
	}
}

// Username returns the authenticated username from the request context.
func Username(c *gin.Context) string {
	v, _ := c.Get(userCtxKey)
	s, _ := v.(string)
	return s
}
