package domain

import "time"

// Credential is one registered identity together with its lockout state.
type Credential struct {
	Email          string
	PasswordHash   string // argon2 encoded
	DisplayName    string
	BirthDate      time.Time // date only
	NationalID     string
	FailedAttempts int
	LastAttemptAt  *time.Time // set on every failed attempt
	Locked         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
