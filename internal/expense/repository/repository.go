package repository

import (
	"context"

	"mission-tracker/backend/internal/expense/domain"
)

// Repository defines persistence for expenses. Reads are account-scoped and
// exclude soft-deleted rows; lookups that match nothing return (nil, nil).
type Repository interface {
	Create(ctx context.Context, e *domain.Expense) error
	GetByID(ctx context.Context, accountID, id string) (*domain.Expense, error)
	// List returns the account's expenses, optionally narrowed to one
	// mission when missionID is non-empty.
	List(ctx context.Context, accountID, missionID string) ([]*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) error
	SoftDelete(ctx context.Context, accountID, id string) (bool, error)
}
