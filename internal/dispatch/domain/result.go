package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status reports whether a dispatch ran to the end.
type Status string

const (
	// StatusCompleted means every batch was processed.
	StatusCompleted Status = "completed"

	// StatusCancelled means cancellation cut the dispatch short: a target was never attempted or
	// its retries were stopped early. A cancel that arrives after every target settled does not count.
	StatusCancelled Status = "cancelled"
)

// Summary classifies the delivery outcomes of a dispatch.
type Summary string

const (
	// SummaryDelivered means every target acknowledged the event.
	SummaryDelivered Summary = "delivered"

	// SummaryPartialFailure means at least one target acknowledged and at least one did not.
	SummaryPartialFailure Summary = "partial_failure"

	// SummaryTotalFailure means no target acknowledged the event.
	SummaryTotalFailure Summary = "total_failure"
)

// CancelledError is the outcome error of a target whose delivery never started because the
// dispatch was cancelled.
const CancelledError = "dispatch cancelled"

// DeliveryOutcome records what happened when delivering to one target.
// It is built by the sender and never modified afterwards.
type DeliveryOutcome struct {
	SubscriptionID uuid.UUID
	TargetURL      string
	Attempts       int           // Number of HTTP attempts made (0 when never attempted)
	StatusCode     int           // Status of the last response, 0 when no response was received
	Error          string        // Last failure description, empty on success
	Success        bool          // True when an attempt returned a 2xx status
	Cancelled      bool          // True when cancellation stopped delivery before success or the attempt budget
	Duration       time.Duration // Wall time spent on this target including backoff waits
}

// DispatchResult is the aggregated outcome of one dispatch invocation.
type DispatchResult struct {
	Success   bool
	Status    Status
	Summary   Summary
	Message   string
	Outcomes  []DeliveryOutcome // Same order as the subscriber snapshot
	Batches   int
	Delivered int
	Failed    int
	Duration  time.Duration
}
