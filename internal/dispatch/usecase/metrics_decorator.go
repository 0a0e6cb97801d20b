package usecase

import (
	"context"
	"time"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	"github.com/allisson/webhooks/internal/metrics"
)

// dispatchUseCaseWithMetrics decorates DispatchUseCase with metrics instrumentation.
type dispatchUseCaseWithMetrics struct {
	next    DispatchUseCase
	metrics metrics.BusinessMetrics
}

// NewDispatchUseCaseWithMetrics wraps a DispatchUseCase with metrics recording.
func NewDispatchUseCaseWithMetrics(useCase DispatchUseCase, m metrics.BusinessMetrics) DispatchUseCase {
	return &dispatchUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Trigger records metrics for dispatch operations. A dispatch that ran but did not deliver
// everywhere is recorded with status "failure".
func (d *dispatchUseCaseWithMetrics) Trigger(
	ctx context.Context,
	event dispatchDomain.EventData,
) (*dispatchDomain.DispatchResult, error) {
	start := time.Now()
	result, err := d.next.Trigger(ctx, event)

	status := metrics.StatusFromError(err)
	if err == nil && !result.Success {
		status = metrics.StatusFailure
	}
	metrics.Observe(ctx, d.metrics, "dispatch", "trigger", start, status)

	return result, err
}
