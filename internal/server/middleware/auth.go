package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	authservice "mission-tracker/backend/internal/auth/service"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/security"
	userrepo "mission-tracker/backend/internal/user/repository"
)

const bearerPrefix = "Bearer "

// Auth guards every tenant-scoped route. It verifies the bearer access
// token, re-checks that the user is still active and still an active member
// of the token's account, and attaches the resolved Identity. A token that
// was valid at issuance stops working the moment the user is deactivated or
// the membership is revoked.
func Auth(tokens *security.TokenProvider, users userrepo.Repository, memberships membershiprepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			httpx.Error(c, security.ErrTokenInvalid)
			return
		}
		claims, err := tokens.Decode(raw)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := security.RequireKind(claims, security.TokenKindAccess); err != nil {
			httpx.Error(c, err)
			return
		}

		ctx := c.Request.Context()
		user, err := users.GetByID(ctx, claims.UserID())
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if user == nil {
			httpx.Error(c, authservice.ErrUserNotFound)
			return
		}
		if !user.Active {
			httpx.Error(c, authservice.ErrInactiveUser)
			return
		}
		m, err := memberships.GetActive(ctx, claims.AccountID, user.ID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if m == nil {
			httpx.Error(c, authservice.ErrAccountAccessDenied)
			return
		}

		SetIdentity(c, Identity{
			UserID:    user.ID,
			AccountID: claims.AccountID,
			Email:     user.Email,
			RoleName:  m.RoleName,
		})
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}
