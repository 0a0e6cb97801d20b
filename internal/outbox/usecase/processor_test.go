package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/webhooks/internal/errors"
	"github.com/allisson/webhooks/internal/outbox/domain"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	args := m.Called(ctx, channel, message)
	return args.Get(0).(*redis.IntCmd)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisEventPublisher_Process(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		publisher := &MockPublisher{}
		processor := NewRedisEventPublisher(publisher, "webhooks.subscriptions", discardLogger())
		event := pendingEvent(0)

		publisher.On("Publish", mock.Anything, "webhooks.subscriptions", mock.MatchedBy(func(body []byte) bool {
			var message domain.Message
			if err := json.Unmarshal(body, &message); err != nil {
				return false
			}
			return message.ID == event.ID &&
				message.EventType == domain.EventTypeSubscriptionCreated &&
				string(message.Payload) == event.Payload
		})).Return(redis.NewIntResult(1, nil))

		require.NoError(t, processor.Process(context.Background(), event))
		publisher.AssertExpectations(t)
	})

	t.Run("PublishError", func(t *testing.T) {
		publisher := &MockPublisher{}
		processor := NewRedisEventPublisher(publisher, "events", discardLogger())

		publisher.On("Publish", mock.Anything, "events", mock.Anything).
			Return(redis.NewIntResult(0, assert.AnError))

		err := processor.Process(context.Background(), pendingEvent(0))
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to publish outbox event")
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		publisher := &MockPublisher{}
		processor := NewRedisEventPublisher(publisher, "events", discardLogger())
		event := pendingEvent(0)
		event.Payload = "not-json"

		err := processor.Process(context.Background(), event)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLoggingEventProcessor_Process(t *testing.T) {
	processor := NewLoggingEventProcessor(discardLogger())

	t.Run("KnownType", func(t *testing.T) {
		assert.NoError(t, processor.Process(context.Background(), pendingEvent(0)))
	})

	t.Run("UnknownType", func(t *testing.T) {
		event := pendingEvent(0)
		event.EventType = "something.else"
		assert.NoError(t, processor.Process(context.Background(), event))
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		event := pendingEvent(0)
		event.Payload = "{"
		assert.Error(t, processor.Process(context.Background(), event))
	})
}
