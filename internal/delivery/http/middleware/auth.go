package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pitchside/scoutd/internal/auth"
	"github.com/pitchside/scoutd/internal/domain"
)

// Context keys set by RequireAuth.
const (
	CtxUsername = "auth_username"
	CtxRole     = "auth_role"
)

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": domain.ErrInvalidToken.Error(),
		},
	})
}

// RequireAuth validates the bearer token on the Authorization header and
// stores the verified subject and role in the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(CtxUsername, claims.Subject)
		c.Set(CtxRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole gates a route on the role claim. Must run after RequireAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxRole) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": domain.ErrForbidden.Error(),
				},
			})
			return
		}
		c.Next()
	}
}
