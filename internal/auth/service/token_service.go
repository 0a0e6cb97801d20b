package service

import (
	"crypto/sha256"
	"encoding/hex"

	apperrors "github.com/allisson/webhooks/internal/errors"
)

// TokenPrefix marks bearer tokens issued by this service.
const TokenPrefix = "whk_"

// tokenService hashes bearer tokens with SHA-256.
type tokenService struct{}

// GenerateToken creates a prefixed random token and its hex-encoded SHA-256 hash.
func (t *tokenService) GenerateToken() (string, string, error) {
	random, err := randomString()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := TokenPrefix + random
	return plainToken, t.HashToken(plainToken), nil
}

// HashToken returns the hex-encoded SHA-256 digest of the plain token.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

// NewTokenService creates a TokenService.
func NewTokenService() TokenService {
	return &tokenService{}
}
