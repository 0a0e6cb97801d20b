package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/database"
)

func TestPostgreSQLClientRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		client := newClient()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).
			WithArgs(client.ID, client.Secret, client.Name, client.IsActive, testPoliciesJSON, client.CreatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), newClient())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to create client")
	})

	t.Run("InTransaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		txManager := database.NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err := txManager.WithTx(context.Background(), func(ctx context.Context) error {
			if err := repo.Create(ctx, newClient()); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLClientRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT id, secret, name, is_active, policies, created_at FROM clients WHERE id = $1")

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		client := newClient()

		mock.ExpectQuery(query).
			WithArgs(client.ID).
			WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(
				client.ID.String(), client.Secret, client.Name, client.IsActive, []byte(testPoliciesJSON), client.CreatedAt,
			))

		got, err := repo.Get(context.Background(), client.ID)
		require.NoError(t, err)
		assert.Equal(t, client, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)

		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)

		mock.ExpectQuery(query).WillReturnError(assert.AnError)

		_, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to get client")
	})

	t.Run("InvalidPolicies", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLClientRepository(db)
		client := newClient()

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(
				client.ID.String(), client.Secret, client.Name, client.IsActive, []byte("{"), client.CreatedAt,
			))

		_, err := repo.Get(context.Background(), client.ID)
		assert.ErrorContains(t, err, "failed to unmarshal client policies")
	})
}
