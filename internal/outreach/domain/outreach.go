package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutreachNotFound is returned when a contact record does not exist in
// the caller's account or has been soft-deleted.
var ErrOutreachNotFound = errors.New("outreach record not found")

// ErrInvalidOutreach wraps every Validate failure.
var ErrInvalidOutreach = errors.New("invalid outreach record")

// Contact is one person reached during a mission.
type Contact struct {
	ID          string
	AccountID   string
	MissionID   string
	FullName    string
	PhoneNumber string
	Status      string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate validates the contact for persistence.
func (c *Contact) Validate() error {
	if c.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidOutreach)
	}
	if c.MissionID == "" {
		return fmt.Errorf("%w: mission id is required", ErrInvalidOutreach)
	}
	return nil
}

// Numbers is the aggregate outreach counter set for one mission. Exactly one
// row exists per mission; writes upsert it.
type Numbers struct {
	ID         string
	AccountID  string
	MissionID  string
	Interested int
	Healed     int
	Saved      int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate validates the counters for persistence.
func (n *Numbers) Validate() error {
	if n.MissionID == "" {
		return fmt.Errorf("%w: mission id is required", ErrInvalidOutreach)
	}
	if n.Interested < 0 || n.Healed < 0 || n.Saved < 0 {
		return fmt.Errorf("%w: counters must not be negative", ErrInvalidOutreach)
	}
	return nil
}
