// Package mocks provides mock implementations of dispatch use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// MockDispatchUseCase is a mock implementation of DispatchUseCase.
type MockDispatchUseCase struct {
	mock.Mock
}

// Trigger mocks the Trigger method of DispatchUseCase.
func (m *MockDispatchUseCase) Trigger(
	ctx context.Context,
	event dispatchDomain.EventData,
) (*dispatchDomain.DispatchResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dispatchDomain.DispatchResult), args.Error(1)
}

// MockSubscriptionLister is a mock implementation of SubscriptionLister.
type MockSubscriptionLister struct {
	mock.Mock
}

// ListAll mocks the ListAll method of SubscriptionLister.
func (m *MockSubscriptionLister) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscriptionDomain.Subscription), args.Error(1)
}
