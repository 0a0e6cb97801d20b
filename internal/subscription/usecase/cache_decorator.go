package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// subscriptionUseCaseWithCache serves ListAll from a cache and drops the cached snapshot after
// every successful write. Cache failures never fail the request.
type subscriptionUseCaseWithCache struct {
	next   SubscriptionUseCase
	cache  SubscriptionCache
	logger *slog.Logger
}

// NewSubscriptionUseCaseWithCache wraps a SubscriptionUseCase with a snapshot cache.
func NewSubscriptionUseCaseWithCache(
	useCase SubscriptionUseCase,
	cache SubscriptionCache,
	logger *slog.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCaseWithCache{
		next:   useCase,
		cache:  cache,
		logger: logger,
	}
}

// Create registers a subscription and invalidates the snapshot.
func (s *subscriptionUseCaseWithCache) Create(
	ctx context.Context,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	subscription, err := s.next.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return subscription, nil
}

// Update modifies a subscription and invalidates the snapshot.
func (s *subscriptionUseCaseWithCache) Update(
	ctx context.Context,
	subscriptionID uuid.UUID,
	input *subscriptionDomain.UpdateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	subscription, err := s.next.Update(ctx, subscriptionID, input)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return subscription, nil
}

// Delete removes a subscription and invalidates the snapshot when something was removed.
func (s *subscriptionUseCaseWithCache) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	removed, err := s.next.Delete(ctx, subscriptionID)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.invalidate(ctx)
	}
	return removed, nil
}

// Get is not cached.
func (s *subscriptionUseCaseWithCache) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	return s.next.Get(ctx, subscriptionID)
}

// List is not cached.
func (s *subscriptionUseCaseWithCache) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	return s.next.List(ctx, offset, limit)
}

// ListAll returns the cached snapshot, loading and storing it on a miss. The generation is read
// before the store so that a write committed while loading keeps the stale list out of the cache.
func (s *subscriptionUseCaseWithCache) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	subscriptions, ok, err := s.cache.GetAll(ctx)
	if err != nil {
		s.logger.Warn("failed to read subscription cache", slog.Any("error", err))
	}
	if err == nil && ok {
		return subscriptions, nil
	}

	generation, genErr := s.cache.Generation(ctx)
	if genErr != nil {
		s.logger.Warn("failed to read subscription cache generation", slog.Any("error", genErr))
	}

	subscriptions, err = s.next.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if genErr != nil {
		return subscriptions, nil
	}

	stored, err := s.cache.SetAll(ctx, generation, subscriptions)
	switch {
	case err != nil:
		s.logger.Warn("failed to write subscription cache", slog.Any("error", err))
	case !stored:
		s.logger.Debug("subscription cache invalidated while loading, snapshot not stored",
			slog.Int64("generation", generation))
	}
	return subscriptions, nil
}

func (s *subscriptionUseCaseWithCache) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("failed to invalidate subscription cache", slog.Any("error", err))
	}
}
