// Package domain defines the transactional outbox used to announce subscription lifecycle
// changes. Events are written in the same transaction as the change and published later
// by the outbox worker.
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/webhooks/internal/errors"
)

// OutboxEventStatus represents the processing state of an outbox event.
type OutboxEventStatus string

const (
	OutboxEventStatusPending   OutboxEventStatus = "pending"
	OutboxEventStatusProcessed OutboxEventStatus = "processed"
	OutboxEventStatusFailed    OutboxEventStatus = "failed"
)

// Subscription lifecycle event types.
const (
	EventTypeSubscriptionCreated = "subscription.created"
	EventTypeSubscriptionUpdated = "subscription.updated"
	EventTypeSubscriptionRemoved = "subscription.removed"
)

// OutboxEvent is a pending notification stored next to the data it describes.
type OutboxEvent struct {
	ID          uuid.UUID
	EventType   string
	Payload     string // JSON document
	Status      OutboxEventStatus
	Retries     int
	LastError   *string
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SubscriptionEvent is the payload of every subscription lifecycle event.
type SubscriptionEvent struct {
	SubscriptionID uuid.UUID `json:"subscription_id"`
	TargetURL      string    `json:"target_url,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewSubscriptionEvent builds a pending outbox event of the given type.
func NewSubscriptionEvent(eventType string, payload SubscriptionEvent) (*OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal subscription event")
	}

	now := time.Now().UTC()
	return &OutboxEvent{
		ID:        uuid.Must(uuid.NewV7()),
		EventType: eventType,
		Payload:   string(body),
		Status:    OutboxEventStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Message is the envelope published for a processed outbox event.
type Message struct {
	ID        uuid.UUID       `json:"id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMessage wraps an outbox event into its published envelope. The stored payload must be
// valid JSON.
func NewMessage(event *OutboxEvent) (*Message, error) {
	if !json.Valid([]byte(event.Payload)) {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "outbox event payload is not valid JSON")
	}
	return &Message{
		ID:        event.ID,
		EventType: event.EventType,
		Payload:   json.RawMessage(event.Payload),
		CreatedAt: event.CreatedAt,
	}, nil
}
