package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/allisson/webhooks/internal/errors"
	"github.com/allisson/webhooks/internal/outbox/domain"
)

// Publisher is the subset of the Redis client used to publish events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisEventPublisher publishes outbox events to a Redis pub/sub channel.
type RedisEventPublisher struct {
	publisher Publisher
	channel   string
	logger    *slog.Logger
}

// NewRedisEventPublisher creates a new RedisEventPublisher.
func NewRedisEventPublisher(publisher Publisher, channel string, logger *slog.Logger) *RedisEventPublisher {
	return &RedisEventPublisher{
		publisher: publisher,
		channel:   channel,
		logger:    logger,
	}
}

// Process publishes the event envelope as JSON.
func (p *RedisEventPublisher) Process(ctx context.Context, event *domain.OutboxEvent) error {
	message, err := domain.NewMessage(event)
	if err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal outbox message")
	}

	receivers, err := p.publisher.Publish(ctx, p.channel, body).Result()
	if err != nil {
		return apperrors.Wrap(err, "failed to publish outbox event")
	}

	p.logger.Debug("outbox event published",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("channel", p.channel),
		slog.Int64("receivers", receivers),
	)
	return nil
}

// LoggingEventProcessor logs outbox events. It is used when Redis is disabled.
type LoggingEventProcessor struct {
	logger *slog.Logger
}

// NewLoggingEventProcessor creates a new LoggingEventProcessor.
func NewLoggingEventProcessor(logger *slog.Logger) *LoggingEventProcessor {
	return &LoggingEventProcessor{logger: logger}
}

// Process logs the event. Unknown event types are still acknowledged.
func (p *LoggingEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	message, err := domain.NewMessage(event)
	if err != nil {
		return err
	}

	switch event.EventType {
	case domain.EventTypeSubscriptionCreated,
		domain.EventTypeSubscriptionUpdated,
		domain.EventTypeSubscriptionRemoved:
		p.logger.InfoContext(ctx, "subscription event",
			slog.String("event_id", message.ID.String()),
			slog.String("event_type", message.EventType),
			slog.String("payload", string(message.Payload)),
		)
	default:
		p.logger.WarnContext(ctx, "unknown outbox event type",
			slog.String("event_id", message.ID.String()),
			slog.String("event_type", message.EventType),
		)
	}
	return nil
}
