package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"campuscert/internal/domain"
)

// bcryptKeyVerifier checks the operator API key against a bcrypt hash kept
// in configuration. The key is pre-hashed with SHA256 so its length never
// exceeds bcrypt's 72-byte input limit.
type bcryptKeyVerifier struct {
	hash []byte
}

// NewBcryptKeyVerifier returns an AdminKeyVerifier for the given bcrypt hash
// (as produced by HashKey).
func NewBcryptKeyVerifier(hash string) domain.AdminKeyVerifier {
	return &bcryptKeyVerifier{hash: []byte(hash)}
}

func (v *bcryptKeyVerifier) VerifyKey(key string) error {
	if len(v.hash) == 0 {
		return fmt.Errorf("admin API key is not configured")
	}
	sum := sha256.Sum256([]byte(key))
	return bcrypt.CompareHashAndPassword(v.hash, []byte(hex.EncodeToString(sum[:])))
}

// HashKey produces the bcrypt hash of an API key for ADMIN_API_KEY_HASH.
func HashKey(key string, cost int) (string, error) {
	sum := sha256.Sum256([]byte(key))
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(sum[:])), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash key: %w", err)
	}
	return string(hash), nil
}
