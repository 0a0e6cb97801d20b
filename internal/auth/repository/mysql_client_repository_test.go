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
)

func TestMySQLClientRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLClientRepository(db)
		client := newClient()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).
			WithArgs(
				mustMarshalID(t, client.ID),
				client.Secret,
				client.Name,
				client.IsActive,
				[]byte(testPoliciesJSON),
				client.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), client))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLClientRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clients")).WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), newClient())
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestMySQLClientRepository_Get(t *testing.T) {
	query := regexp.QuoteMeta("SELECT id, secret, name, is_active, policies, created_at FROM clients WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLClientRepository(db)
		client := newClient()

		mock.ExpectQuery(query).
			WithArgs(mustMarshalID(t, client.ID)).
			WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(
				mustMarshalID(t, client.ID), client.Secret, client.Name, client.IsActive, []byte(testPoliciesJSON), client.CreatedAt,
			))

		got, err := repo.Get(context.Background(), client.ID)
		require.NoError(t, err)
		assert.Equal(t, client, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLClientRepository(db)

		mock.ExpectQuery(query).WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
		assert.ErrorIs(t, err, authDomain.ErrClientNotFound)
	})

	t.Run("InvalidID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLClientRepository(db)
		client := newClient()

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(clientColumns).AddRow(
				[]byte{0x01}, client.Secret, client.Name, client.IsActive, []byte(testPoliciesJSON), client.CreatedAt,
			))

		_, err := repo.Get(context.Background(), client.ID)
		assert.ErrorContains(t, err, "failed to unmarshal client id")
	})
}
