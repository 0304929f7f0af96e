package repository

import (
	"context"

	"mission-tracker/backend/internal/account/domain"
)

// Repository defines persistence for accounts.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, a *domain.Account) error
}
