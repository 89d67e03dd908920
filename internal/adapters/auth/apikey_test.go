package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestAPIKey_HashAndVerify(t *testing.T) {
	hash, err := HashKey("super-secret-key", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	verifier := NewBcryptKeyVerifier(hash)
	if err := verifier.VerifyKey("super-secret-key"); err != nil {
		t.Errorf("expected correct key to verify, got %v", err)
	}
	if err := verifier.VerifyKey("wrong-key"); err == nil {
		t.Error("expected wrong key to fail verification")
	}
}

func TestAPIKey_UnconfiguredHashRejectsAll(t *testing.T) {
	verifier := NewBcryptKeyVerifier("")
	if err := verifier.VerifyKey("anything"); err == nil {
		t.Fatal("expected verification to fail when no hash is configured")
	}
}
