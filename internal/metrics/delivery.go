package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DeliveryMetrics records per-target webhook delivery results.
type DeliveryMetrics interface {
	// RecordDelivery records one finished delivery with its attempt count and wall time.
	RecordDelivery(ctx context.Context, success bool, attempts int, duration time.Duration)
}

type deliveryMetrics struct {
	deliveryCounter metric.Int64Counter
	attemptsHisto   metric.Int64Histogram
	durationHisto   metric.Float64Histogram
}

// NewDeliveryMetrics creates a DeliveryMetrics implementation using the provided meter provider.
func NewDeliveryMetrics(meterProvider metric.MeterProvider, namespace string) (DeliveryMetrics, error) {
	meter := meterProvider.Meter(namespace)

	deliveryCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_webhook_deliveries_total", namespace),
		metric.WithDescription("Total number of webhook deliveries by result"),
		metric.WithUnit("{delivery}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery counter: %w", err)
	}

	attemptsHisto, err := meter.Int64Histogram(
		fmt.Sprintf("%s_webhook_delivery_attempts", namespace),
		metric.WithDescription("Number of HTTP attempts spent per webhook delivery"),
		metric.WithUnit("{attempt}"),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 10),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attempts histogram: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_webhook_delivery_duration_seconds", namespace),
		metric.WithDescription("Duration of webhook deliveries including backoff in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery duration histogram: %w", err)
	}

	return &deliveryMetrics{
		deliveryCounter: deliveryCounter,
		attemptsHisto:   attemptsHisto,
		durationHisto:   durationHisto,
	}, nil
}

// RecordDelivery increments the delivery counter and records attempts and duration with a result label.
func (d *deliveryMetrics) RecordDelivery(
	ctx context.Context,
	success bool,
	attempts int,
	duration time.Duration,
) {
	result := "failure"
	if success {
		result = "success"
	}
	attrs := metric.WithAttributes(attribute.String("result", result))

	d.deliveryCounter.Add(ctx, 1, attrs)
	d.attemptsHisto.Record(ctx, int64(attempts), attrs)
	d.durationHisto.Record(ctx, duration.Seconds(), attrs)
}

// NoOpDeliveryMetrics is a no-op implementation of DeliveryMetrics for when metrics are disabled.
type NoOpDeliveryMetrics struct{}

// NewNoOpDeliveryMetrics creates a no-op DeliveryMetrics implementation.
func NewNoOpDeliveryMetrics() DeliveryMetrics {
	return &NoOpDeliveryMetrics{}
}

// RecordDelivery does nothing when metrics are disabled.
func (n *NoOpDeliveryMetrics) RecordDelivery(
	ctx context.Context,
	success bool,
	attempts int,
	duration time.Duration,
) {
	// No-op
}
