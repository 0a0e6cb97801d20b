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

// MySQLSubscriptionRepository implements subscription persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLSubscriptionRepository struct {
	db *sql.DB
}

// Create inserts a new subscription.
func (m *MySQLSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := subscription.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal subscription id")
	}

	query := `INSERT INTO subscriptions (id, target_url, created_at, updated_at) VALUES (?, ?, ?, ?)`

	_, err = querier.ExecContext(ctx, query, id, subscription.TargetURL, subscription.CreatedAt, subscription.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create subscription")
	}
	return nil
}

// Update modifies the target URL of an existing subscription.
// MySQL reports zero affected rows for an unchanged value, so existence is checked separately.
func (m *MySQLSubscriptionRepository) Update(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := subscription.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal subscription id")
	}

	query := `UPDATE subscriptions SET target_url = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(ctx, query, subscription.TargetURL, subscription.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update subscription")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get rows affected")
	}
	if rows > 0 {
		return nil
	}

	if _, err := m.Get(ctx, subscription.ID); err != nil {
		return err
	}
	return nil
}

// Delete removes a subscription and returns the number of removed rows (0 or 1).
func (m *MySQLSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := subscriptionID.MarshalBinary()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to marshal subscription id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
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
func (m *MySQLSubscriptionRepository) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	id, err := subscriptionID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal subscription id")
	}

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions WHERE id = ?`

	var subscription subscriptionDomain.Subscription
	var idBytes []byte
	err = querier.QueryRowContext(ctx, query, id).Scan(
		&idBytes,
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

	if err := subscription.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal subscription id")
	}

	return &subscription, nil
}

// ListAll retrieves every subscription ordered by creation time.
func (m *MySQLSubscriptionRepository) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions ORDER BY created_at ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer rows.Close() //nolint:errcheck

	return scanMySQLSubscriptions(rows)
}

// List retrieves a page of subscriptions ordered by creation time.
func (m *MySQLSubscriptionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, target_url, created_at, updated_at FROM subscriptions
			  ORDER BY created_at ASC, id ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list subscriptions")
	}
	defer rows.Close() //nolint:errcheck

	return scanMySQLSubscriptions(rows)
}

func scanMySQLSubscriptions(rows *sql.Rows) ([]*subscriptionDomain.Subscription, error) {
	subscriptions := make([]*subscriptionDomain.Subscription, 0)
	for rows.Next() {
		var subscription subscriptionDomain.Subscription
		var idBytes []byte
		if err := rows.Scan(
			&idBytes,
			&subscription.TargetURL,
			&subscription.CreatedAt,
			&subscription.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan subscription")
		}

		if err := subscription.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal subscription id")
		}
		subscriptions = append(subscriptions, &subscription)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate subscriptions")
	}
	return subscriptions, nil
}

// NewMySQLSubscriptionRepository creates a new MySQL subscription repository.
func NewMySQLSubscriptionRepository(db *sql.DB) *MySQLSubscriptionRepository {
	return &MySQLSubscriptionRepository{db: db}
}
