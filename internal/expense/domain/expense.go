package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrExpenseNotFound is returned when an expense does not exist in the
// caller's account or has been soft-deleted.
var ErrExpenseNotFound = errors.New("expense not found")

// ErrInvalidExpense wraps every Validate failure.
var ErrInvalidExpense = errors.New("invalid expense")

// Expense is a spend record. MissionID is optional; account-level expenses
// leave it nil.
type Expense struct {
	ID          string
	AccountID   string
	MissionID   *string
	UserID      string
	Category    string
	Amount      float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the expense for persistence.
func (e *Expense) Validate() error {
	if e.Category == "" {
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	}
	return nil
}
