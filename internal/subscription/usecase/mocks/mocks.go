// Package mocks provides mock implementations of subscription use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	outboxDomain "github.com/allisson/webhooks/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// MockTxManager is a mock implementation of database.TxManager. Unless an error is configured,
// it runs fn with the given context.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockSubscriptionRepository) Create(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// Update mocks the Update method.
func (m *MockSubscriptionRepository) Update(
	ctx context.Context,
	subscription *subscriptionDomain.Subscription,
) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

// Delete mocks the Delete method.
func (m *MockSubscriptionRepository) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(int64), args.Error(1)
}

// Get mocks the Get method.
func (m *MockSubscriptionRepository) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

// ListAll mocks the ListAll method.
func (m *MockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}

// List mocks the List method.
func (m *MockSubscriptionRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}

// MockOutboxEventRepository is a mock implementation of OutboxEventRepository.
type MockOutboxEventRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockOutboxEventRepository) Create(ctx context.Context, event *outboxDomain.OutboxEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSubscriptionCache is a mock implementation of SubscriptionCache.
type MockSubscriptionCache struct {
	mock.Mock
}

// GetAll mocks the GetAll method.
func (m *MockSubscriptionCache) GetAll(ctx context.Context) ([]*subscriptionDomain.Subscription, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Bool(1), args.Error(2)
}

// Generation mocks the Generation method.
func (m *MockSubscriptionCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// SetAll mocks the SetAll method.
func (m *MockSubscriptionCache) SetAll(
	ctx context.Context,
	generation int64,
	subscriptions []*subscriptionDomain.Subscription,
) (bool, error) {
	args := m.Called(ctx, generation, subscriptions)
	return args.Bool(0), args.Error(1)
}

// Invalidate mocks the Invalidate method.
func (m *MockSubscriptionCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockSubscriptionUseCase is a mock implementation of SubscriptionUseCase.
type MockSubscriptionUseCase struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockSubscriptionUseCase) Create(
	ctx context.Context,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

// Update mocks the Update method.
func (m *MockSubscriptionUseCase) Update(
	ctx context.Context,
	subscriptionID uuid.UUID,
	input *subscriptionDomain.UpdateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, subscriptionID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockSubscriptionUseCase) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).(int64), args.Error(1)
}

// Get mocks the Get method.
func (m *MockSubscriptionUseCase) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscriptionDomain.Subscription), args.Error(1)
}

// List mocks the List method.
func (m *MockSubscriptionUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}

// ListAll mocks the ListAll method.
func (m *MockSubscriptionUseCase) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}
