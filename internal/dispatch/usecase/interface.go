// Package usecase implements the webhook dispatch engine.
package usecase

import (
	"context"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// SubscriptionLister provides a read-only snapshot of every registered subscription.
type SubscriptionLister interface {
	// ListAll returns all subscriptions in creation order.
	ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error)
}

// DispatchUseCase delivers an event to every registered subscriber.
type DispatchUseCase interface {
	// Trigger validates the event, snapshots the subscribers and delivers the event to each of
	// them in paced batches. Delivery failures are reported in the result, not as an error.
	//
	// Returns an ErrInvalidInput-wrapped error for an invalid event, ErrLoadSubscribers when the
	// snapshot cannot be read and ErrNoSubscribers when nobody is subscribed. In all three cases
	// no request is sent.
	//
	// Cancelling ctx stops new batches and retries; the partial result is returned with
	// StatusCancelled.
	Trigger(ctx context.Context, event dispatchDomain.EventData) (*dispatchDomain.DispatchResult, error)
}
