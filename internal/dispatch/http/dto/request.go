// Package dto provides data transfer objects for dispatch HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	customValidation "github.com/allisson/webhooks/internal/validation"
)

// TriggerRequest is the optional body of a dispatch call.
type TriggerRequest struct {
	IPAddress string `json:"ip_address"`
}

// Validate checks the explicit caller identity when one was provided.
func (r *TriggerRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IPAddress,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// ToEventData maps the request to the dispatch event, falling back to the given client address.
func (r *TriggerRequest) ToEventData(clientIP string) dispatchDomain.EventData {
	ip := r.IPAddress
	if ip == "" {
		ip = clientIP
	}
	return dispatchDomain.EventData{IPAddress: ip}
}
