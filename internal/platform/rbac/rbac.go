// Package rbac enforces role checks on routes that require more than bare
// membership. Membership itself is established upstream by the auth
// middleware; these guards only inspect the role it resolved.
package rbac

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	membershipdomain "mission-tracker/backend/internal/membership/domain"
	"mission-tracker/backend/internal/server/middleware"
)

// ErrForbidden is returned when the caller's role does not permit the
// operation.
var ErrForbidden = errors.New("insufficient role for this operation")

// RequireRole aborts with 403 unless the caller holds one of the allowed
// roles in the current account.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := middleware.GetIdentity(c)
		if !ok {
			forbid(c)
			return
		}
		for _, role := range allowed {
			if id.RoleName == role {
				c.Next()
				return
			}
		}
		forbid(c)
	}
}

// RequireAdmin restricts a route to account admins.
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(membershipdomain.RoleAdmin)
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"code":    "forbidden",
		"message": ErrForbidden.Error(),
	})
}
