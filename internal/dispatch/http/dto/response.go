package dto

import (
	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
)

// DeliveryOutcomeResponse represents a single target outcome in API responses.
type DeliveryOutcomeResponse struct {
	SubscriptionID string `json:"subscription_id"`
	TargetURL      string `json:"target_url"`
	Attempts       int    `json:"attempts"`
	StatusCode     int    `json:"status_code,omitempty"`
	Error          string `json:"error,omitempty"`
	Success        bool   `json:"success"`
	DurationMS     int64  `json:"duration_ms"`
}

// DispatchResultResponse represents an aggregated dispatch result in API responses.
type DispatchResultResponse struct {
	Success    bool                      `json:"success"`
	Status     string                    `json:"status"`
	Summary    string                    `json:"summary"`
	Message    string                    `json:"message"`
	Batches    int                       `json:"batches"`
	Delivered  int                       `json:"delivered"`
	Failed     int                       `json:"failed"`
	DurationMS int64                     `json:"duration_ms"`
	Outcomes   []DeliveryOutcomeResponse `json:"outcomes"`
}

// MapDispatchResultToResponse converts a domain dispatch result to an API response.
func MapDispatchResultToResponse(result *dispatchDomain.DispatchResult) DispatchResultResponse {
	outcomes := make([]DeliveryOutcomeResponse, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		outcomes = append(outcomes, DeliveryOutcomeResponse{
			SubscriptionID: outcome.SubscriptionID.String(),
			TargetURL:      outcome.TargetURL,
			Attempts:       outcome.Attempts,
			StatusCode:     outcome.StatusCode,
			Error:          outcome.Error,
			Success:        outcome.Success,
			DurationMS:     outcome.Duration.Milliseconds(),
		})
	}

	return DispatchResultResponse{
		Success:    result.Success,
		Status:     string(result.Status),
		Summary:    string(result.Summary),
		Message:    result.Message,
		Batches:    result.Batches,
		Delivered:  result.Delivered,
		Failed:     result.Failed,
		DurationMS: result.Duration.Milliseconds(),
		Outcomes:   outcomes,
	}
}
