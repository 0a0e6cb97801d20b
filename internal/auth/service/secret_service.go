package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/webhooks/internal/errors"
)

// secretService hashes client secrets with Argon2id.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateSecret creates a random URL-safe secret and its Argon2id hash.
func (s *secretService) GenerateSecret() (string, string, error) {
	plainSecret, err := randomString()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to hash secret")
	}

	return plainSecret, hashedSecret, nil
}

// CompareSecret verifies a plain secret against its stored hash.
// Malformed hashes never match.
func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// NewSecretService creates a SecretService using the Moderate Argon2id policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// Only reachable with an invalid built-in policy.
		panic(err)
	}

	return &secretService{hasher: hasher}
}
