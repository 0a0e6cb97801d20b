package repository

import (
	"context"
	"database/sql"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/database"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// MySQLTokenRepository stores token hashes in MySQL.
type MySQLTokenRepository struct {
	db *sql.DB
}

// NewMySQLTokenRepository returns a MySQLTokenRepository using db.
func NewMySQLTokenRepository(db *sql.DB) *MySQLTokenRepository {
	return &MySQLTokenRepository{db: db}
}

// Create inserts token.
func (m *MySQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	id, err := binaryID(token.ID, "token")
	if err != nil {
		return err
	}
	clientID, err := binaryID(token.ClientID, "client")
	if err != nil {
		return err
	}

	_, err = database.GetTx(ctx, m.db).ExecContext(ctx,
		"INSERT INTO tokens ("+tokenColumnList+") VALUES (?, ?, ?, ?, ?, ?)",
		id, token.TokenHash, clientID, token.ExpiresAt, token.RevokedAt, token.CreatedAt,
	)
	return apperrors.Wrap(err, "failed to create token")
}

// GetByTokenHash returns the token whose plain value hashes to tokenHash or ErrTokenNotFound.
func (m *MySQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	var (
		token           authDomain.Token
		rawID, rawOwner []byte
	)
	row := database.GetTx(ctx, m.db).QueryRowContext(ctx,
		"SELECT "+tokenColumnList+" FROM tokens WHERE token_hash = ?", tokenHash)
	if err := row.Scan(&rawID, &token.TokenHash, &rawOwner, &token.ExpiresAt, &token.RevokedAt, &token.CreatedAt); err != nil {
		return nil, lookupError(err, authDomain.ErrTokenNotFound, "token")
	}

	if err := parseBinaryID(rawID, &token.ID, "token"); err != nil {
		return nil, err
	}
	if err := parseBinaryID(rawOwner, &token.ClientID, "client"); err != nil {
		return nil, err
	}
	return &token, nil
}
