package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventdesk/internal/domain"
)

type bcryptKeyVerifier struct{}

// NewBcryptKeyVerifier returns a KeyVerifier for bcrypt hashes produced by
// GenerateKeyHash.
func NewBcryptKeyVerifier() domain.KeyVerifier {
	return &bcryptKeyVerifier{}
}

func (v *bcryptKeyVerifier) Compare(hash, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}

// GenerateKeyHash hashes an API key for storage in configuration. bcrypt
// embeds its own salt, so equal keys produce distinct hashes.
func GenerateKeyHash(key string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash api key: %w", err)
	}
	return string(hash), nil
}
