package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-manager/internal/token"
)

const identityKey = "identity"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware verifies the bearer credential and stores the asserted
// identity in the request context for downstream handlers.
func authMiddleware(sessions *token.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Missing or invalid token"})
			return
		}

		identity, err := sessions.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "Missing or invalid token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

func callerIdentity(c *gin.Context) (token.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return token.Identity{}, false
	}
	identity, ok := value.(token.Identity)
	return identity, ok
}
