// Package repository implements persistence for API clients and their bearer tokens.
//
// PostgreSQL stores UUIDs natively and policies as JSONB. MySQL stores UUIDs as BINARY(16)
// and policies as JSON. Both participate in transactions through database.GetTx.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/database"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// PostgreSQLClientRepository stores clients in PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// NewPostgreSQLClientRepository returns a PostgreSQLClientRepository using db.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

// Create inserts client.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	policies, err := encodePolicies(client)
	if err != nil {
		return err
	}

	// lib/pq sends []byte as bytea, so JSONB gets the text form.
	_, err = database.GetTx(ctx, p.db).ExecContext(ctx,
		"INSERT INTO clients ("+clientColumnList+") VALUES ($1, $2, $3, $4, $5, $6)",
		client.ID, client.Secret, client.Name, client.IsActive, string(policies), client.CreatedAt,
	)
	return apperrors.Wrap(err, "failed to create client")
}

// Get returns the client with clientID or ErrClientNotFound.
func (p *PostgreSQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	var (
		client   authDomain.Client
		policies []byte
	)
	row := database.GetTx(ctx, p.db).QueryRowContext(ctx,
		"SELECT "+clientColumnList+" FROM clients WHERE id = $1", clientID)
	if err := row.Scan(&client.ID, &client.Secret, &client.Name, &client.IsActive, &policies, &client.CreatedAt); err != nil {
		return nil, lookupError(err, authDomain.ErrClientNotFound, "client")
	}

	if err := decodePolicies(policies, &client); err != nil {
		return nil, err
	}
	return &client, nil
}
