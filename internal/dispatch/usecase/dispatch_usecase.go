package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	"github.com/allisson/webhooks/internal/dispatch/service"
)

// Config holds the batching and pacing policy of the dispatch engine.
type Config struct {
	Sizing         service.SizingPolicy
	PacingInterval time.Duration // Pause between consecutive batches, never applied after the last one
}

// DefaultConfig returns the default sizing policy with a two second pause between batches.
func DefaultConfig() Config {
	return Config{
		Sizing:         service.DefaultSizingPolicy(),
		PacingInterval: 2 * time.Second,
	}
}

// dispatchUseCase implements DispatchUseCase. It keeps no state between invocations.
type dispatchUseCase struct {
	config Config
	lister SubscriptionLister
	sender service.Sender
	logger *slog.Logger
	wait   func(ctx context.Context, d time.Duration) error
}

// Trigger runs one dispatch: Loading, then Empty or Dispatching, then Completed.
func (d *dispatchUseCase) Trigger(
	ctx context.Context,
	event dispatchDomain.EventData,
) (*dispatchDomain.DispatchResult, error) {
	start := time.Now()

	if err := event.Validate(); err != nil {
		return nil, err
	}

	d.logger.Debug("loading subscribers")
	subscriptions, err := d.lister.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", dispatchDomain.ErrLoadSubscribers, err)
	}
	if len(subscriptions) == 0 {
		d.logger.Debug("no subscribers to dispatch to")
		return nil, dispatchDomain.ErrNoSubscribers
	}

	targets := make([]dispatchDomain.Target, len(subscriptions))
	for i, subscription := range subscriptions {
		targets[i] = dispatchDomain.Target{
			SubscriptionID: subscription.ID,
			URL:            subscription.TargetURL,
		}
	}

	batchSize := d.config.Sizing.BatchSize(len(targets))
	batches := service.Chunk(targets, batchSize)
	outcomes := make([]dispatchDomain.DeliveryOutcome, len(targets))

	d.logger.Info("dispatch started",
		slog.String("ip_address", event.IPAddress),
		slog.Int("targets", len(targets)),
		slog.Int("batches", len(batches)),
		slog.Int("batch_size", batchSize),
	)

	sent := 0
	for i, batch := range batches {
		if ctx.Err() != nil {
			break
		}

		d.logger.Debug("dispatching batch",
			slog.Int("batch", i+1),
			slog.Int("batches", len(batches)),
			slog.Int("size", len(batch)),
		)
		d.sendBatch(ctx, batch, event, outcomes[sent:sent+len(batch)])
		sent += len(batch)

		if i < len(batches)-1 {
			if err := d.wait(ctx, d.config.PacingInterval); err != nil {
				break
			}
		}
	}

	for i := sent; i < len(targets); i++ {
		outcomes[i] = dispatchDomain.DeliveryOutcome{
			SubscriptionID: targets[i].SubscriptionID,
			TargetURL:      targets[i].URL,
			Error:          dispatchDomain.CancelledError,
			Cancelled:      true,
		}
	}

	result := service.Aggregate(outcomes, cutShort(outcomes))
	result.Batches = len(batches)
	result.Duration = time.Since(start)

	attrs := []any{
		slog.String("status", string(result.Status)),
		slog.String("summary", string(result.Summary)),
		slog.Int("delivered", result.Delivered),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", result.Duration),
	}
	if result.Success {
		d.logger.Info("dispatch finished", attrs...)
	} else {
		d.logger.Warn("dispatch finished with failures", attrs...)
	}

	return result, nil
}

// sendBatch delivers to every target of the batch concurrently and waits for all of them.
// Each goroutine writes only its own slot of out.
func (d *dispatchUseCase) sendBatch(
	ctx context.Context,
	batch []dispatchDomain.Target,
	event dispatchDomain.EventData,
	out []dispatchDomain.DeliveryOutcome,
) {
	var g errgroup.Group
	for i, target := range batch {
		g.Go(func() error {
			out[i] = d.sender.Send(ctx, target, event)
			return nil
		})
	}
	_ = g.Wait()

	for _, outcome := range out {
		if outcome.Success {
			continue
		}
		d.logger.Warn("webhook delivery failed",
			slog.String("subscription_id", outcome.SubscriptionID.String()),
			slog.String("target_url", outcome.TargetURL),
			slog.Int("attempts", outcome.Attempts),
			slog.Int("status_code", outcome.StatusCode),
			slog.String("error", outcome.Error),
		)
	}
}

// cutShort reports whether cancellation stopped any delivery early. A cancel that lands after
// every target settled leaves the dispatch completed.
func cutShort(outcomes []dispatchDomain.DeliveryOutcome) bool {
	for _, outcome := range outcomes {
		if outcome.Cancelled {
			return true
		}
	}
	return false
}

// sleepContext waits for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewDispatchUseCase creates the dispatch engine.
func NewDispatchUseCase(
	config Config,
	lister SubscriptionLister,
	sender service.Sender,
	logger *slog.Logger,
) DispatchUseCase {
	return &dispatchUseCase{
		config: config,
		lister: lister,
		sender: sender,
		logger: logger,
		wait:   sleepContext,
	}
}
