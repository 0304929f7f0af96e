package security

import "time"

// NewTestTokenProvider returns a TokenProvider with a fixed secret and short
// TTLs for use in tests.
func NewTestTokenProvider() *TokenProvider {
	return NewTokenProvider([]byte("test-secret-do-not-use-in-prod"), 15*time.Minute, 24*time.Hour)
}
