package domain

import "time"

// ResetToken is a single-use password recovery grant. Only the fingerprint of
// the emailed token is stored.
type ResetToken struct {
	ID        string
	Email     string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the token can still be redeemed at now.
func (t ResetToken) ValidAt(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
