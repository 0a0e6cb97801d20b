package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is an issued bearer token. Only the SHA-256 hash of the plain token is stored.
type Token struct {
	ID        uuid.UUID
	TokenHash string
	ClientID  uuid.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// IsUsable reports whether the token can authenticate a request at the given instant.
func (t *Token) IsUsable(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// IssueTokenInput carries the client credentials exchanged for a token.
type IssueTokenInput struct {
	ClientID     uuid.UUID
	ClientSecret string //nolint:gosec // plain secret supplied by the caller, never stored
}

// IssueTokenOutput is returned once per issued token.
type IssueTokenOutput struct {
	PlainToken string //nolint:gosec // returned to the caller once, only the hash is stored
	ExpiresAt  time.Time
}
