// Package domain defines the webhook dispatch domain model.
//
// A dispatch delivers one event to every subscriber in a snapshot of the subscription store,
// records one DeliveryOutcome per subscriber and folds the outcomes into a DispatchResult.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/webhooks/internal/validation"
)

// EventData describes the event being announced to subscribers.
type EventData struct {
	IPAddress string // Identity of the caller that triggered the event
}

// Validate checks that the event carries an identifying field.
func (e EventData) Validate() error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.IPAddress,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
	return customValidation.WrapValidationError(err)
}

// Payload is the JSON body POSTed to each subscriber.
type Payload struct {
	IPAddress string `json:"ipAddress"`
	CreatedAt int64  `json:"createdAt"` // Unix epoch milliseconds at send time
}

// NewPayload builds the wire payload for an event at the given instant.
func NewPayload(event EventData, now time.Time) Payload {
	return Payload{
		IPAddress: event.IPAddress,
		CreatedAt: now.UnixMilli(),
	}
}

// Target is a single delivery destination taken from the subscriber snapshot.
type Target struct {
	SubscriptionID uuid.UUID
	URL            string
}
