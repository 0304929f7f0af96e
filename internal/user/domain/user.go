package domain

import (
	"errors"
	"time"
)

// User is the core identity record. Users are never hard-deleted;
// deactivation flips Active instead.
type User struct {
	ID           string
	FullName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.FullName == "" {
		return errors.New("full name is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// Sanitized returns a copy safe to serialize in API responses: the password
// hash is stripped.
func (u *User) Sanitized() User {
	s := *u
	s.PasswordHash = ""
	return s
}
