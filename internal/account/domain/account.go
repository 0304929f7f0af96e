package domain

import (
	"errors"
	"time"
)

// Account is a tenant: an organizational boundary owning its own roles,
// missions, outreach data, and expenses.
type Account struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Location    string
	CreatedBy   string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the account for persistence. Returns an error describing the first validation failure.
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("account name is required")
	}
	if a.CreatedBy == "" {
		return errors.New("created_by is required")
	}
	return nil
}
