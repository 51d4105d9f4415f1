package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// resetTokenBytes is the entropy of a password reset token before hex encoding.
const resetTokenBytes = 32

// NewResetToken returns a random hex reset token and the hash to store for it.
// Only the hash is persisted; the raw token goes to the user.
func NewResetToken() (token, hash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	token = hex.EncodeToString(b)
	return token, HashResetToken(token), nil
}

// HashResetToken is the SHA-256 hex digest under which a reset token is looked up.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
