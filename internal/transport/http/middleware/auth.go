package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/token"
)

// Auth validates the Bearer session token and sets "userID" and "userEmail"
// in the gin context. Expired, malformed, and badly-signed tokens are told
// apart only in the log; the client always sees the same unauthorized body.
func Auth(tokens *token.Issuer, logger *slog.Logger) gin.HandlerFunc {
	authLogger := logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "No token provided"})
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			authLogger.WarnContext(c.Request.Context(), "token rejected", "reason", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"success": false, "message": "Unauthorized"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
