package domain

import (
	"errors"
	"time"
)

// Default role names assigned by the auth and account flows. Role rows are
// scoped to one account; two accounts may each define an "admin" role.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ErrDuplicateMembership is returned when an active membership already exists
// for the same (account, user) pair.
var ErrDuplicateMembership = errors.New("user is already a member of this account")

// Role is a named permission label owned by one account.
type Role struct {
	ID          string
	Name        string
	AccountID   string
	Description string
	CreatedAt   time.Time
}

// Membership links a user to an account with exactly one role at a time.
// Role changes are recorded as deactivate-old + create-new so the history
// survives; DeletedAt marks the soft-deleted rows.
type Membership struct {
	ID        string
	AccountID string
	UserID    string
	RoleID    string
	RoleName  string
	DeletedAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the membership has not been soft-deleted.
func (m *Membership) Active() bool {
	return m.DeletedAt == nil
}
