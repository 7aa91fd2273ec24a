package middleware

import (
	"net/http"
	"strings"

	"honeypot-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIKeyAuth creates a Gin middleware validating a bearer API key against the
// stored key set. No state is mutated on a rejected request.
func APIKeyAuth(keys repository.APIKeyRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API key required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <key>"})
			c.Abort()
			return
		}

		exists, err := keys.KeyExists(parts[1])
		if err != nil {
			logger.Error("Failed to validate API key", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate API key"})
			c.Abort()
			return
		}
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
