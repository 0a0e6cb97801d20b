package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
	"github.com/allisson/webhooks/internal/subscription/usecase"
	"github.com/allisson/webhooks/internal/subscription/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectRecorded(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "subscription", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "subscription", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestSubscriptionUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	id := uuid.Must(uuid.NewV7())
	subscription := &subscriptionDomain.Subscription{ID: id, TargetURL: "https://a.example.com"}

	t.Run("Create success", func(t *testing.T) {
		next := &mocks.MockSubscriptionUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewSubscriptionUseCaseWithMetrics(next, m)
		input := &subscriptionDomain.CreateSubscriptionInput{TargetURL: subscription.TargetURL}

		next.On("Create", ctx, input).Return(subscription, nil).Once()
		expectRecorded(ctx, m, "create", "success")

		got, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, subscription, got)
		m.AssertExpectations(t)
	})

	t.Run("Update error", func(t *testing.T) {
		next := &mocks.MockSubscriptionUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewSubscriptionUseCaseWithMetrics(next, m)
		input := &subscriptionDomain.UpdateSubscriptionInput{TargetURL: subscription.TargetURL}

		next.On("Update", ctx, id, input).Return(nil, subscriptionDomain.ErrSubscriptionNotFound).Once()
		expectRecorded(ctx, m, "update", "error")

		_, err := uc.Update(ctx, id, input)
		assert.ErrorIs(t, err, subscriptionDomain.ErrSubscriptionNotFound)
		m.AssertExpectations(t)
	})

	t.Run("Delete success", func(t *testing.T) {
		next := &mocks.MockSubscriptionUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewSubscriptionUseCaseWithMetrics(next, m)

		next.On("Delete", ctx, id).Return(int64(1), nil).Once()
		expectRecorded(ctx, m, "delete", "success")

		removed, err := uc.Delete(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), removed)
		m.AssertExpectations(t)
	})

	t.Run("reads", func(t *testing.T) {
		next := &mocks.MockSubscriptionUseCase{}
		m := &mockBusinessMetrics{}
		uc := usecase.NewSubscriptionUseCaseWithMetrics(next, m)
		all := []*subscriptionDomain.Subscription{subscription}

		next.On("Get", ctx, id).Return(subscription, nil).Once()
		next.On("List", ctx, 0, 10).Return(all, nil).Once()
		next.On("ListAll", ctx).Return(nil, assert.AnError).Once()
		expectRecorded(ctx, m, "get", "success")
		expectRecorded(ctx, m, "list", "success")
		expectRecorded(ctx, m, "list_all", "error")

		_, err := uc.Get(ctx, id)
		assert.NoError(t, err)
		_, err = uc.List(ctx, 0, 10)
		assert.NoError(t, err)
		_, err = uc.ListAll(ctx)
		assert.ErrorIs(t, err, assert.AnError)
		m.AssertExpectations(t)
	})
}
