package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/crypto/bcrypt"
)

func TestGenerateKeyHash_and_Compare(t *testing.T) {
	hash, err := GenerateKeyHash("local-dev-key", bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)

	v := NewBcryptKeyVerifier()
	assert.NoError(t, v.Compare(hash, "local-dev-key"))
}

func TestBcryptKeyVerifier_wrongKey(t *testing.T) {
	hash, err := GenerateKeyHash("correct-key", bcrypt.MinCost)
	require.NoError(t, err)

	v := NewBcryptKeyVerifier()
	assert.Error(t, v.Compare(hash, "wrong-key"))
}

func TestBcryptKeyVerifier_malformedHash(t *testing.T) {
	v := NewBcryptKeyVerifier()
	assert.Error(t, v.Compare("not-a-hash", "any-key"))
}
