package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rishtahub/rishta_backend/internal/security"
	"github.com/rishtahub/rishta_backend/pkg/errors"
)

const userIDKey = "auth_user_id"

// Auth resolves the bearer token to a numeric user ID and stores it in the
// request context. Everything past this middleware works with that single
// strongly-typed identity; no handler ever re-parses the principal.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  errors.ErrCodeNotAuthenticated,
				"error": "missing bearer token",
			})
			return
		}

		claims, err := security.ValidateJWT(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  errors.ErrCodeNotAuthenticated,
				"error": "invalid token",
			})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by Auth.
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(uint)
	return userID, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	// Websocket clients cannot set headers from the browser; allow the
	// token as a query parameter on the upgrade request.
	return c.Query("token")
}
