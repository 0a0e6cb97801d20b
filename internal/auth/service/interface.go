// Package service provides the credential primitives used by client and token use cases.
package service

// SecretService generates and verifies client secrets.
type SecretService interface {
	// GenerateSecret returns a new random secret together with its Argon2id hash.
	// Only the hash may be persisted.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates bearer tokens and derives the hash they are looked up by.
type TokenService interface {
	// GenerateToken returns a new random token together with its SHA-256 hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the lookup hash of a plain token.
	HashToken(plainToken string) string
}
