// Package dto provides data transfer objects for subscription HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
	customValidation "github.com/allisson/webhooks/internal/validation"
)

// SubscriptionRequest is the body of both register and update calls.
type SubscriptionRequest struct {
	TargetURL string `json:"target_url"`
}

// Validate checks if the subscription request is valid.
func (r *SubscriptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.TargetURL,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 2048),
			customValidation.WebhookURL,
		),
	)
}

// ToCreateInput maps the request to the domain create input.
func (r *SubscriptionRequest) ToCreateInput() *subscriptionDomain.CreateSubscriptionInput {
	return &subscriptionDomain.CreateSubscriptionInput{TargetURL: r.TargetURL}
}

// ToUpdateInput maps the request to the domain update input.
func (r *SubscriptionRequest) ToUpdateInput() *subscriptionDomain.UpdateSubscriptionInput {
	return &subscriptionDomain.UpdateSubscriptionInput{TargetURL: r.TargetURL}
}
