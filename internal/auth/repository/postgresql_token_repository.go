package repository

import (
	"context"
	"database/sql"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/database"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// PostgreSQLTokenRepository stores token hashes in PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// NewPostgreSQLTokenRepository returns a PostgreSQLTokenRepository using db.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}

// Create inserts token.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *authDomain.Token) error {
	_, err := database.GetTx(ctx, p.db).ExecContext(ctx,
		"INSERT INTO tokens ("+tokenColumnList+") VALUES ($1, $2, $3, $4, $5, $6)",
		token.ID, token.TokenHash, token.ClientID, token.ExpiresAt, token.RevokedAt, token.CreatedAt,
	)
	return apperrors.Wrap(err, "failed to create token")
}

// GetByTokenHash returns the token whose plain value hashes to tokenHash or ErrTokenNotFound.
func (p *PostgreSQLTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error) {
	var token authDomain.Token
	row := database.GetTx(ctx, p.db).QueryRowContext(ctx,
		"SELECT "+tokenColumnList+" FROM tokens WHERE token_hash = $1", tokenHash)
	if err := row.Scan(&token.ID, &token.TokenHash, &token.ClientID, &token.ExpiresAt, &token.RevokedAt, &token.CreatedAt); err != nil {
		return nil, lookupError(err, authDomain.ErrTokenNotFound, "token")
	}
	return &token, nil
}
