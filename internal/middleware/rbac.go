package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

// RBAC allows the listed roles. The pseudo-role "SELF" additionally
// permits users to reach resources keyed by their own id path param.
func RBAC(allowed ...string) gin.HandlerFunc {
	roleSet := make(map[string]struct{}, len(allowed))
	allowSelf := false
	for _, role := range allowed {
		if role == "SELF" {
			allowSelf = true
			continue
		}
		roleSet[role] = struct{}{}
	}

	return func(c *gin.Context) {
		value, ok := c.Get(ContextUserKey)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, ok := value.(*models.JWTClaims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if _, ok := roleSet[string(claims.Role)]; ok {
			c.Next()
			return
		}

		if allowSelf && c.Param("id") == strconv.FormatInt(claims.UserID, 10) {
			c.Next()
			return
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// RequireRoles is a typed variant of RBAC without SELF handling.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return RBAC(names...)
}
