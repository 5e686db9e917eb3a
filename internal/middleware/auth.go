package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/groupmirror/core/internal/pkg/jwt"
	"github.com/groupmirror/core/internal/pkg/response"
)

// Auth returns a middleware that enforces the operator JWT on admin routes.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := jwt.Verify(extractToken(c)); err != nil {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
