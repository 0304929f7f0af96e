package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPassword is returned when a password is empty or exceeds the
	// bcrypt input limit of 72 bytes.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrCorruptHash is returned when a stored password hash is structurally
	// invalid. This signals data corruption, not a normal login failure.
	ErrCorruptHash = errors.New("corrupt password hash")
)

// maxPasswordBytes is the bcrypt input limit; longer passwords are silently
// truncated by bcrypt, so they are rejected instead.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords using bcrypt. Callers must not log or
// persist plaintext passwords.
type Hasher struct {
	Cost int
}

// NewHasher returns a Hasher with the given bcrypt cost (4 to 31). Cost 12 is a
// reasonable default for interactive login.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{Cost: cost}
}

// Hash produces a salted bcrypt hash of password, suitable for storage.
// Returns ErrInvalidPassword if the password is empty or longer than 72 bytes.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" || len(password) > maxPasswordBytes {
		return "", ErrInvalidPassword
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies password against the stored hash using bcrypt's
// constant-time comparison. Returns (false, nil) on a mismatch and
// (false, ErrCorruptHash) when the stored hash is not a valid bcrypt blob.
func (h *Hasher) Compare(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, ErrCorruptHash
}
