package service

import (
	"fmt"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
)

// Result messages.
const (
	messageDelivered      = "All triggers sent successfully"
	messagePartialFailure = "Some triggers failed to complete (%d of %d), kindly try again"
	messageTotalFailure   = "All triggers failed to complete (%d of %d)"
	messageCancelled      = "Dispatch cancelled: "
)

// Aggregate folds per-target outcomes into a DispatchResult. Outcomes keep their input order.
// A cancelled dispatch is never successful, whatever its outcomes say.
func Aggregate(outcomes []dispatchDomain.DeliveryOutcome, cancelled bool) *dispatchDomain.DispatchResult {
	result := &dispatchDomain.DispatchResult{
		Status:   dispatchDomain.StatusCompleted,
		Outcomes: outcomes,
	}

	for _, outcome := range outcomes {
		if outcome.Success {
			result.Delivered++
		} else {
			result.Failed++
		}
	}

	total := len(outcomes)
	switch {
	case result.Failed == 0:
		result.Summary = dispatchDomain.SummaryDelivered
		result.Message = messageDelivered
	case result.Delivered == 0:
		result.Summary = dispatchDomain.SummaryTotalFailure
		result.Message = fmt.Sprintf(messageTotalFailure, result.Failed, total)
	default:
		result.Summary = dispatchDomain.SummaryPartialFailure
		result.Message = fmt.Sprintf(messagePartialFailure, result.Failed, total)
	}

	result.Success = result.Failed == 0 && !cancelled
	if cancelled {
		result.Status = dispatchDomain.StatusCancelled
		result.Message = messageCancelled + result.Message
	}

	return result
}
