package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckWebhookToken rejects webhook calls whose :token path segment does not
// match the bot token.
func CheckWebhookToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.Param("token")
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
