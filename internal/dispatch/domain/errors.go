package domain

import (
	"github.com/allisson/webhooks/internal/errors"
)

// NoSubscribersMessage is reported to callers when there is nobody to dispatch to.
const NoSubscribersMessage = "no hooks found to send triggers, try again after creating one"

// Dispatch errors.
var (
	// ErrNoSubscribers indicates the subscription store is empty, so nothing was sent.
	ErrNoSubscribers = errors.Wrap(errors.ErrNotFound, NoSubscribersMessage)

	// ErrLoadSubscribers indicates the subscriber snapshot could not be read.
	ErrLoadSubscribers = errors.Wrap(errors.ErrUnavailable, "failed to load subscribers")
)
