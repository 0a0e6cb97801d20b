package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
)

var (
	clientColumns = []string{"id", "secret", "name", "is_active", "policies", "created_at"}
	tokenColumns  = []string{"id", "token_hash", "client_id", "expires_at", "revoked_at", "created_at"}
)

const testPoliciesJSON = `[{"path":"/v1/webhooks/*","capabilities":["read","trigger"]}]`

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func mustMarshalID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func newClient() *authDomain.Client {
	return &authDomain.Client{
		ID:       uuid.Must(uuid.NewV7()),
		Secret:   "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Name:     "billing",
		IsActive: true,
		Policies: []authDomain.PolicyDocument{
			{
				Path:         "/v1/webhooks/*",
				Capabilities: []authDomain.Capability{authDomain.ReadCapability, authDomain.TriggerCapability},
			},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func newToken(clientID uuid.UUID) *authDomain.Token {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		ClientID:  clientID,
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
}
