// Package usecase implements subscription management: registration, lookup, update and removal
// of webhook targets.
package usecase

import (
	"context"

	"github.com/google/uuid"

	outboxDomain "github.com/allisson/webhooks/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// SubscriptionRepository defines persistence operations for subscriptions.
// Implementations must support transaction-aware operations via context propagation.
type SubscriptionRepository interface {
	// Create stores a new subscription.
	Create(ctx context.Context, subscription *subscriptionDomain.Subscription) error

	// Update modifies an existing subscription. Returns ErrSubscriptionNotFound if not found.
	Update(ctx context.Context, subscription *subscriptionDomain.Subscription) error

	// Delete removes a subscription and returns the number of removed rows.
	Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error)

	// Get retrieves a subscription by ID. Returns ErrSubscriptionNotFound if not found.
	Get(ctx context.Context, subscriptionID uuid.UUID) (*subscriptionDomain.Subscription, error)

	// ListAll retrieves every subscription in creation order.
	ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error)

	// List retrieves a page of subscriptions in creation order.
	List(ctx context.Context, offset, limit int) ([]*subscriptionDomain.Subscription, error)
}

// OutboxEventRepository stores lifecycle events in the caller's transaction.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// SubscriptionCache holds the full subscription snapshot used by dispatches.
type SubscriptionCache interface {
	// GetAll returns the cached snapshot. The boolean is false on a cache miss.
	GetAll(ctx context.Context) ([]*subscriptionDomain.Subscription, bool, error)

	// Generation returns a counter that every Invalidate bumps.
	Generation(ctx context.Context) (int64, error)

	// SetAll replaces the cached snapshot unless the cache was invalidated after generation was
	// read. The boolean reports whether the snapshot was stored.
	SetAll(ctx context.Context, generation int64, subscriptions []*subscriptionDomain.Subscription) (bool, error)

	// Invalidate drops the cached snapshot and bumps the generation.
	Invalidate(ctx context.Context) error
}

// SubscriptionUseCase defines business logic operations for webhook subscriptions.
type SubscriptionUseCase interface {
	// Create validates and registers a new target URL. Duplicate URLs are accepted.
	Create(
		ctx context.Context,
		input *subscriptionDomain.CreateSubscriptionInput,
	) (*subscriptionDomain.Subscription, error)

	// Update replaces the target URL of an existing subscription.
	// Returns ErrSubscriptionNotFound if the subscription doesn't exist.
	Update(
		ctx context.Context,
		subscriptionID uuid.UUID,
		input *subscriptionDomain.UpdateSubscriptionInput,
	) (*subscriptionDomain.Subscription, error)

	// Delete removes a subscription and reports how many were removed (0 or 1).
	Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error)

	// Get retrieves a subscription by ID.
	Get(ctx context.Context, subscriptionID uuid.UUID) (*subscriptionDomain.Subscription, error)

	// List retrieves a page of subscriptions in creation order.
	List(ctx context.Context, offset, limit int) ([]*subscriptionDomain.Subscription, error)

	// ListAll retrieves every subscription in creation order.
	ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error)
}
