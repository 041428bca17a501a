package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// resetSecretBytes gives 256 bits of entropy per reset secret.
const resetSecretBytes = 32

// NewResetSecret returns a hex-encoded random secret for a reset link.
// Only its bcrypt hash may be persisted.
func NewResetSecret() (string, error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
