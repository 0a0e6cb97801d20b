// Package domain defines the subscription model: a registered target URL that receives
// every dispatched webhook event.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Subscription represents a webhook target. Duplicate target URLs are allowed and each
// subscription receives its own delivery.
type Subscription struct {
	ID        uuid.UUID // Unique identifier (UUIDv7)
	TargetURL string    // Absolute http(s) URL receiving the POST
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateSubscriptionInput contains the parameters for registering a subscription.
type CreateSubscriptionInput struct {
	TargetURL string `json:"target_url"`
}

// UpdateSubscriptionInput contains the mutable fields of a subscription.
type UpdateSubscriptionInput struct {
	TargetURL string `json:"target_url"`
}
