package repository

import (
	"context"

	"mission-tracker/backend/internal/mission/domain"
)

// Repository defines persistence for missions and their user assignments.
// Reads are always scoped by account and exclude soft-deleted rows; a lookup
// that matches nothing returns (nil, nil).
type Repository interface {
	Create(ctx context.Context, m *domain.Mission) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Mission, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Mission, error)
	Update(ctx context.Context, m *domain.Mission) error
	SoftDelete(ctx context.Context, accountID, id string) (bool, error)

	Assign(ctx context.Context, a *domain.Assignment) error
	ListAssignments(ctx context.Context, missionID string) ([]*domain.Assignment, error)
	Unassign(ctx context.Context, missionID, userID string) (bool, error)
}
