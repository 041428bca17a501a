package auth

import (
	"encoding/hex"
	"testing"
)

func TestNewResetSecret(t *testing.T) {
	t.Parallel()

	secret, err := NewResetSecret()
	if err != nil {
		t.Fatalf("NewResetSecret error: %v", err)
	}
	raw, err := hex.DecodeString(secret)
	if err != nil {
		t.Fatalf("secret should be hex encoded: %v", err)
	}
	if len(raw) != resetSecretBytes {
		t.Fatalf("expected %d bytes of entropy, got %d", resetSecretBytes, len(raw))
	}

	other, err := NewResetSecret()
	if err != nil {
		t.Fatalf("NewResetSecret error: %v", err)
	}
	if secret == other {
		t.Fatal("two secrets should never collide")
	}
}
