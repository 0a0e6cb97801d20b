package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/webhooks/internal/outbox/domain"
)

var outboxColumns = []string{
	"id", "event_type", "payload", "status", "retries", "last_error", "processed_at", "created_at", "updated_at",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func newEvent(t *testing.T) *domain.OutboxEvent {
	t.Helper()
	event, err := domain.NewSubscriptionEvent(domain.EventTypeSubscriptionCreated, domain.SubscriptionEvent{
		SubscriptionID: uuid.Must(uuid.NewV7()),
		TargetURL:      "https://example.com/hooks",
		OccurredAt:     time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	event.CreatedAt = event.CreatedAt.Truncate(time.Microsecond)
	event.UpdatedAt = event.CreatedAt
	return event
}

func mustMarshalID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestPostgreSQLOutboxEventRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOutboxEventRepository(db)
		event := newEvent(t)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
			WithArgs(event.ID, event.EventType, event.Payload, "pending", 0, nil, nil, event.CreatedAt, event.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), event))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOutboxEventRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), newEvent(t))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to create outbox event")
	})
}

func TestPostgreSQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	query := regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOutboxEventRepository(db)
		first := newEvent(t)
		second := newEvent(t)

		mock.ExpectQuery(query).
			WithArgs("pending", 10).
			WillReturnRows(sqlmock.NewRows(outboxColumns).
				AddRow(first.ID.String(), first.EventType, first.Payload, "pending", 0, nil, nil, first.CreatedAt, first.UpdatedAt).
				AddRow(second.ID.String(), second.EventType, second.Payload, "pending", 1, "boom", nil, second.CreatedAt, second.UpdatedAt))

		events, err := repo.GetPendingEvents(context.Background(), 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, first, events[0])
		assert.Equal(t, 1, events[1].Retries)
		require.NotNil(t, events[1].LastError)
		assert.Equal(t, "boom", *events[1].LastError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOutboxEventRepository(db)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(outboxColumns))

		events, err := repo.GetPendingEvents(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, events)
		assert.NotNil(t, events)
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLOutboxEventRepository(db)

		mock.ExpectQuery(query).WillReturnError(assert.AnError)

		_, err := repo.GetPendingEvents(context.Background(), 10)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPostgreSQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLOutboxEventRepository(db)
	event := newEvent(t)
	processedAt := event.CreatedAt.Add(time.Second)
	event.Status = domain.OutboxEventStatusProcessed
	event.ProcessedAt = &processedAt
	event.UpdatedAt = processedAt

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("processed", 0, nil, processedAt, processedAt, event.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newEvent(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(mustMarshalID(t, event.ID), event.EventType, event.Payload, "pending", 0, nil, nil, event.CreatedAt, event.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLOutboxEventRepository_GetPendingEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLOutboxEventRepository(db)
		event := newEvent(t)

		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
			WithArgs("pending", 5).
			WillReturnRows(sqlmock.NewRows(outboxColumns).
				AddRow(mustMarshalID(t, event.ID), event.EventType, event.Payload, "pending", 0, nil, nil, event.CreatedAt, event.UpdatedAt))

		events, err := repo.GetPendingEvents(context.Background(), 5)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event, events[0])
	})

	t.Run("InvalidID", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewMySQLOutboxEventRepository(db)
		event := newEvent(t)

		mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE SKIP LOCKED")).
			WillReturnRows(sqlmock.NewRows(outboxColumns).
				AddRow([]byte{0x01}, event.EventType, event.Payload, "pending", 0, nil, nil, event.CreatedAt, event.UpdatedAt))

		_, err := repo.GetPendingEvents(context.Background(), 5)
		assert.ErrorContains(t, err, "failed to unmarshal outbox event id")
	})
}

func TestMySQLOutboxEventRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMySQLOutboxEventRepository(db)
	event := newEvent(t)
	lastError := "redis unavailable"
	event.Retries = 3
	event.LastError = &lastError
	event.Status = domain.OutboxEventStatusFailed

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("failed", 3, lastError, nil, event.UpdatedAt, mustMarshalID(t, event.ID)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), event))
	assert.NoError(t, mock.ExpectationsWereMet())
}
