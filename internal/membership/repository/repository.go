package repository

import (
	"context"

	"mission-tracker/backend/internal/membership/domain"
)

// Repository defines persistence for account memberships and roles.
type Repository interface {
	// EnsureRole is an idempotent get-or-create keyed by (name, account_id).
	// Concurrent callers for the same account must not observe a uniqueness
	// violation; the loser of the insert race reads the winner's row.
	EnsureRole(ctx context.Context, accountID, name string) (*domain.Role, error)
	GetRoleByID(ctx context.Context, id string) (*domain.Role, error)
	// Create persists a membership. Returns domain.ErrDuplicateMembership when
	// an active membership already exists for the same (account, user) pair.
	Create(ctx context.Context, m *domain.Membership) error
	// GetActive returns the active membership for (account, user), ignoring
	// soft-deleted rows, or nil if none.
	GetActive(ctx context.Context, accountID, userID string) (*domain.Membership, error)
	// ListForUser returns the user's active memberships ordered by membership
	// creation time.
	ListForUser(ctx context.Context, userID string) ([]*domain.Membership, error)
	// ListByAccount returns the account's active memberships ordered by
	// membership creation time.
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Membership, error)
	// Deactivate soft-deletes the membership by setting its deletion
	// timestamp; the row is kept as history.
	Deactivate(ctx context.Context, membershipID string) error
}
