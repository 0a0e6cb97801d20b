package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/webhooks/internal/metrics"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// subscriptionUseCaseWithMetrics decorates SubscriptionUseCase with metrics instrumentation.
type subscriptionUseCaseWithMetrics struct {
	next    SubscriptionUseCase
	metrics metrics.BusinessMetrics
}

// NewSubscriptionUseCaseWithMetrics wraps a SubscriptionUseCase with metrics recording.
func NewSubscriptionUseCaseWithMetrics(
	useCase SubscriptionUseCase,
	m metrics.BusinessMetrics,
) SubscriptionUseCase {
	return &subscriptionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *subscriptionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "subscription", operation, start, metrics.StatusFromError(err))
}

// Create records metrics for subscription registration.
func (s *subscriptionUseCaseWithMetrics) Create(
	ctx context.Context,
	input *subscriptionDomain.CreateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscription, err := s.next.Create(ctx, input)
	s.record(ctx, "create", start, err)
	return subscription, err
}

// Update records metrics for subscription updates.
func (s *subscriptionUseCaseWithMetrics) Update(
	ctx context.Context,
	subscriptionID uuid.UUID,
	input *subscriptionDomain.UpdateSubscriptionInput,
) (*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscription, err := s.next.Update(ctx, subscriptionID, input)
	s.record(ctx, "update", start, err)
	return subscription, err
}

// Delete records metrics for subscription removal.
func (s *subscriptionUseCaseWithMetrics) Delete(ctx context.Context, subscriptionID uuid.UUID) (int64, error) {
	start := time.Now()
	removed, err := s.next.Delete(ctx, subscriptionID)
	s.record(ctx, "delete", start, err)
	return removed, err
}

// Get records metrics for subscription retrieval.
func (s *subscriptionUseCaseWithMetrics) Get(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscription, err := s.next.Get(ctx, subscriptionID)
	s.record(ctx, "get", start, err)
	return subscription, err
}

// List records metrics for paginated listing.
func (s *subscriptionUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscriptions, err := s.next.List(ctx, offset, limit)
	s.record(ctx, "list", start, err)
	return subscriptions, err
}

// ListAll records metrics for snapshot loads.
func (s *subscriptionUseCaseWithMetrics) ListAll(ctx context.Context) ([]*subscriptionDomain.Subscription, error) {
	start := time.Now()
	subscriptions, err := s.next.ListAll(ctx)
	s.record(ctx, "list_all", start, err)
	return subscriptions, err
}
