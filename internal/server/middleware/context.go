package middleware

import "github.com/gin-gonic/gin"

// Identity is the authenticated caller attached to the request context by
// the auth middleware. Every value is taken from a verified access token and
// a live membership check, never from request input.
type Identity struct {
	UserID    string
	AccountID string
	Email     string
	RoleName  string
}

const identityKey = "auth.identity"

// SetIdentity attaches the caller identity to the gin context.
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// GetIdentity returns the caller identity, or false when the request did not
// pass the auth middleware.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// MustIdentity returns the caller identity. It is only safe behind the auth
// middleware; routes registered without it will panic here, which is a wiring
// bug, not a runtime condition.
func MustIdentity(c *gin.Context) Identity {
	id, ok := GetIdentity(c)
	if !ok {
		panic("identity missing from context: route registered without auth middleware")
	}
	return id
}
