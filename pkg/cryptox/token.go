package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// ResetTokenBytes is the entropy of a password reset token. Encoded it is
// 43 URL-safe characters.
const ResetTokenBytes = 32

// RandomString returns n random bytes encoded as unpadded base64url.
func RandomString(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: random length must be positive, got %d", n)
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewResetToken returns a fresh reset token for the emailed link together
// with the fingerprint it is stored under. Only the fingerprint may be
// persisted.
func NewResetToken() (token, fingerprint string, err error) {
	token, err = RandomString(ResetTokenBytes)
	if err != nil {
		return "", "", err
	}
	return token, FingerprintToken(token), nil
}

// FingerprintToken is the SHA-256 of token, base64url encoded. Lookups by
// presented token go through the fingerprint.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
