package domain

import (
	"github.com/allisson/webhooks/internal/errors"
)

// Subscription errors.
var (
	// ErrSubscriptionNotFound indicates a subscription with the specified ID was not found.
	ErrSubscriptionNotFound = errors.Wrap(errors.ErrNotFound, "subscription not found")
)
