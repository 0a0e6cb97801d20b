// Package dto provides data transfer objects for the token endpoint.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	customValidation "github.com/allisson/webhooks/internal/validation"
)

// IssueTokenRequest contains the client credentials exchanged for a token.
type IssueTokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"` //nolint:gosec // request field, never logged
}

// Validate checks that both credentials are present and the client id is a UUID.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.UUID,
		),
		validation.Field(&r.ClientSecret,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// ToIssueTokenInput maps a validated request to the domain input.
func (r *IssueTokenRequest) ToIssueTokenInput() *authDomain.IssueTokenInput {
	return &authDomain.IssueTokenInput{
		ClientID:     uuid.MustParse(r.ClientID),
		ClientSecret: r.ClientSecret,
	}
}
