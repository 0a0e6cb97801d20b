// Package service provides the building blocks of a webhook dispatch: batch sizing,
// per-target HTTP delivery with retries, and outcome aggregation.
package service

import (
	"context"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
)

// Sender delivers one event to one target.
//
// Implementations never return an error: every failure, including an exhausted retry budget,
// is recorded in the returned DeliveryOutcome. Cancelling ctx prevents further attempts but
// lets an attempt already on the wire finish.
type Sender interface {
	Send(ctx context.Context, target dispatchDomain.Target, event dispatchDomain.EventData) dispatchDomain.DeliveryOutcome
}
