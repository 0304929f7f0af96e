package repository

import (
	"context"

	"mission-tracker/backend/internal/outreach/domain"
)

// Repository defines persistence for outreach contacts and the per-mission
// aggregate counters. Reads are account-scoped and exclude soft-deleted
// rows; lookups that match nothing return (nil, nil).
type Repository interface {
	CreateContact(ctx context.Context, c *domain.Contact) error
	GetContact(ctx context.Context, accountID, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context, accountID, missionID string) ([]*domain.Contact, error)
	UpdateContact(ctx context.Context, c *domain.Contact) error
	SoftDeleteContact(ctx context.Context, accountID, id string) (bool, error)

	// UpsertNumbers inserts the mission's counter row or overwrites it if
	// one already exists.
	UpsertNumbers(ctx context.Context, n *domain.Numbers) error
	GetNumbers(ctx context.Context, accountID, missionID string) (*domain.Numbers, error)
}
