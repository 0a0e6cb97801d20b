package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/database"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// MySQLClientRepository stores clients in MySQL with BINARY(16) ids and JSON policies.
type MySQLClientRepository struct {
	db *sql.DB
}

// NewMySQLClientRepository returns a MySQLClientRepository using db.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

// Create inserts client.
func (m *MySQLClientRepository) Create(ctx context.Context, client *authDomain.Client) error {
	id, err := binaryID(client.ID, "client")
	if err != nil {
		return err
	}
	policies, err := encodePolicies(client)
	if err != nil {
		return err
	}

	_, err = database.GetTx(ctx, m.db).ExecContext(ctx,
		"INSERT INTO clients ("+clientColumnList+") VALUES (?, ?, ?, ?, ?, ?)",
		id, client.Secret, client.Name, client.IsActive, policies, client.CreatedAt,
	)
	return apperrors.Wrap(err, "failed to create client")
}

// Get returns the client with clientID or ErrClientNotFound.
func (m *MySQLClientRepository) Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error) {
	id, err := binaryID(clientID, "client")
	if err != nil {
		return nil, err
	}

	var (
		client   authDomain.Client
		rawID    []byte
		policies []byte
	)
	row := database.GetTx(ctx, m.db).QueryRowContext(ctx,
		"SELECT "+clientColumnList+" FROM clients WHERE id = ?", id)
	if err := row.Scan(&rawID, &client.Secret, &client.Name, &client.IsActive, &policies, &client.CreatedAt); err != nil {
		return nil, lookupError(err, authDomain.ErrClientNotFound, "client")
	}

	if err := parseBinaryID(rawID, &client.ID, "client"); err != nil {
		return nil, err
	}
	if err := decodePolicies(policies, &client); err != nil {
		return nil, err
	}
	return &client, nil
}
