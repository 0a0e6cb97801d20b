// Package repository implements subscription persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/webhooks/internal/database"
	apperrors "github.com/allisson/webhooks/internal/errors"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// PostgreSQLSubscriptionRepository implements subscription persistence for PostgreSQL.
type PostgreSQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new subscription.
func (p *PostgreSQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO subscriptions (id, target_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(
		ctx,
		query,
		subscription.ID,
		subscription.TargetURL,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// Update modifies the target URL of an existing subscription.
// Returns ErrSubscriptionNotFound when no row matches the ID.
func (p *PostgreSQLSubscriptionRepository) Update(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE subscriptions SET target_url = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, subscription.TargetURL, subscription.UpdatedAt, subscription.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows == 0 {
		return subscriptionDomain.ErrSubscriptionNotFound
	}
	return nil
}

// Delete removes a subscription and returns the number of removed rows (0 or 1).
func (p *PostgreSQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = $1`, subscriptionID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get rows affected")
	}
	return rows, nil
}

// Get retrieves a subscription by ID.
func (p *PostgreSQLSubscriptionRepository) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions WHERE id = $1`

	var subscription subscriptionDomain.Subscription
	err := querier.QueryRowContext(ctx, query, subscriptionID).Scan(
		&subscription.ID,
		&subscription.TargetURL,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, subscriptionDomain.ErrSubscriptionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get subscription")
	}

	return &subscription, nil
}

// ListAll retrieves every subscription ordered by creation time.
func (p *PostgreSQLSubscriptionRepository) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer rows.Close() //nolint:errcheck

	return scanPostgreSQLSubscriptions(rows)
}

// List retrieves a page of subscriptions ordered by creation time.
func (p *PostgreSQLSubscriptionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions
			  ORDER BY created_at ASC, id ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer rows.Close() //nolint:errcheck

	return scanPostgreSQLSubscriptions(rows)
}

func scanPostgreSQLSubscriptions(rows *sql.Rows) ([]*subscriptionDomain.Subscription, error) {
	subscriptions := make([]*subscriptionDomain.Subscription, 0)
	for rows.Next() {
		var subscription subscriptionDomain.Subscription
		if err := rows.Scan(
			&subscription.ID,
			&subscription.TargetURL,
			&subscription.CreatedAt,
			&subscription.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}
		subscriptions = append(subscriptions, &subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}
	return subscriptions, nil
}

// NewPostgreSQLSubscriptionRepository creates a new PostgreSQL subscription repository.
func NewPostgreSQLSubscriptionRepository(db *sql.DB) *PostgreSQLSubscriptionRepository {
	return &PostgreSQLSubscriptionRepository{db: db}
}
