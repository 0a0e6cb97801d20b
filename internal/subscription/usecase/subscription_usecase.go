package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/webhooks/internal/database"
	outboxDomain "github.com/allisson/webhooks/internal/outbox/domain"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// subscriptionUseCase implements SubscriptionUseCase. Every write stores its lifecycle event
// in the same transaction.
type subscriptionUseCase struct {
	txManager        database.TxManager
	subscriptionRepo SubscriptionRepository
	outboxRepo       OutboxEventRepository
	now              func() time.Time
}

// Create registers a new subscription and records a subscription.created event.
func (s *subscriptionUseCase) Create(
	ctx context.Context,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	subscription := &subscriptionDomain.Subscription{
		ID:        uuid.Must(uuid.NewV7()),
		TargetURL: input.TargetURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
			return err
		}
		return s.recordEvent(ctx, outboxDomain.EventTypeSubscriptionCreated, subscription.ID, subscription.TargetURL)
	})
	if err != nil {
		return nil, err
	}

	return subscription, nil
}

// Update replaces the target URL and records a subscription.updated event.
func (s *subscriptionUseCase) Update(
	ctx context.Context,
	subscriptionID uuid.UUID,
	input *subscriptionDomain.UpdateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var subscription *subscriptionDomain.Subscription
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.subscriptionRepo.Get(ctx, subscriptionID)
		if err != nil {
			return err
		}

		current.TargetURL = input.TargetURL
		current.UpdatedAt = s.now()
		if err := s.subscriptionRepo.Update(ctx, current); err != nil {
			return err
		}

		subscription = current
		return s.recordEvent(ctx, outboxDomain.EventTypeSubscriptionUpdated, current.ID, current.TargetURL)
	})
	if err != nil {
		return nil, err
	}

	return subscription, nil
}

// Delete removes a subscription. A subscription.removed event is recorded only when a row
// was actually removed.
func (s *subscriptionUseCase) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	var removed int64
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.subscriptionRepo.Delete(ctx, subscriptionID)
		if err != nil {
			return err
		}
		if removed == 0 {
			return nil
		}
		return s.recordEvent(ctx, outboxDomain.EventTypeSubscriptionRemoved, subscriptionID, "")
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// Get retrieves a subscription by ID.
func (s *subscriptionUseCase) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	return s.subscriptionRepo.Get(ctx, subscriptionID)
}

// List retrieves a page of subscriptions.
func (s *subscriptionUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	return s.subscriptionRepo.List(ctx, offset, limit)
}

// ListAll retrieves every subscription.
func (s *subscriptionUseCase) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	return s.subscriptionRepo.ListAll(ctx)
}

func (s *subscriptionUseCase) recordEvent(
	ctx context.Context,
	eventType string,
	subscriptionID uuid.UUID,
	targetURL string,
) error {
	event, err := outboxDomain.NewSubscriptionEvent(eventType, outboxDomain.SubscriptionEvent{
		SubscriptionID: subscriptionID,
		TargetURL:      targetURL,
		OccurredAt:     s.now(),
	})
	if err != nil {
		return err
	}
	return s.outboxRepo.Create(ctx, event)
}

// NewSubscriptionUseCase creates a new SubscriptionUseCase with the provided dependencies.
func NewSubscriptionUseCase(
	txManager database.TxManager,
	subscriptionRepo SubscriptionRepository,
	outboxRepo OutboxEventRepository,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		txManager:        txManager,
		subscriptionRepo: subscriptionRepo,
		outboxRepo:       outboxRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}
