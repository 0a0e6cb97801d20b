package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	service := NewTokenService()

	t.Run("Success_GenerateToken", func(t *testing.T) {
		plainToken, tokenHash, err := service.GenerateToken()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(plainToken, TokenPrefix))
		assert.Len(t, tokenHash, 64)

		expected := sha256.Sum256([]byte(plainToken))
		assert.Equal(t, hex.EncodeToString(expected[:]), tokenHash)
	})

	t.Run("Success_GenerateUniqueTokens", func(t *testing.T) {
		plain1, hash1, err := service.GenerateToken()
		require.NoError(t, err)
		plain2, hash2, err := service.GenerateToken()
		require.NoError(t, err)

		assert.NotEqual(t, plain1, plain2)
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestTokenService_HashToken(t *testing.T) {
	service := NewTokenService()

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, service.HashToken("whk_abc"), service.HashToken("whk_abc"))
	})

	t.Run("DifferentInputs", func(t *testing.T) {
		assert.NotEqual(t, service.HashToken("whk_abc"), service.HashToken("whk_abd"))
	})

	t.Run("KnownValue", func(t *testing.T) {
		assert.Equal(t,
			"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
			service.HashToken(""),
		)
	})
}
