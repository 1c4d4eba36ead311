package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"clinicbook/utils"
)

// JWTAuthMiddleware extracts the caller's identity from a bearer token. The
// caller is pre-authenticated by the surrounding platform; this middleware
// only verifies the signature and exposes subject and role to handlers.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaimsFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("userID", subject)
		c.Set("role", role)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated caller carries one of
// the allowed roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
