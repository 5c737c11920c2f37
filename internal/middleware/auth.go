package middleware

import (
	"net/http"
	"strings"

	"altoev/internal/domain"
	jwtsvc "altoev/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// tokenValidator is implemented by the jwt service.
type tokenValidator interface {
	ValidateToken(tokenStr string) (*jwtsvc.Claims, error)
}

// RequireAdmin authenticates the Bearer token and requires the admin role.
// Every mutating endpoint sits behind it; the read-only dashboard routes
// stay public.
func RequireAdmin(jwt tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !found || tokenStr == "" {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid Authorization header")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		if claims.Role != domain.RoleAdmin {
			abortWithError(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
