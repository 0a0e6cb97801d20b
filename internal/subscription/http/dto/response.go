package dto

import (
	"time"

	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
)

// SubscriptionResponse represents a subscription in API responses.
type SubscriptionResponse struct {
	ID        string    `json:"id"`
	TargetURL string    `json:"target_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapSubscriptionToResponse converts a domain subscription to an API response.
func MapSubscriptionToResponse(subscription *subscriptionDomain.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        subscription.ID.String(),
		TargetURL: subscription.TargetURL,
		CreatedAt: subscription.CreatedAt,
		UpdatedAt: subscription.UpdatedAt,
	}
}

// ListSubscriptionsResponse represents a page of subscriptions.
type ListSubscriptionsResponse struct {
	Data []SubscriptionResponse `json:"data"`
}

// MapSubscriptionsToListResponse converts domain subscriptions to a list API response.
func MapSubscriptionsToListResponse(subscriptions []*subscriptionDomain.Subscription) ListSubscriptionsResponse {
	data := make([]SubscriptionResponse, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		data = append(data, MapSubscriptionToResponse(subscription))
	}
	return ListSubscriptionsResponse{Data: data}
}

// DeleteSubscriptionResponse reports how many subscriptions a delete removed.
type DeleteSubscriptionResponse struct {
	RemovedCount int64 `json:"removed_count"`
}
