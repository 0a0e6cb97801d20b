package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/webhooks/internal/validation"
)

// validateTargetURL applies the target URL rules shared by create and update.
func validateTargetURL(targetURL *string) *validation.FieldRules {
	return validation.Field(targetURL,
		validation.Required,
		customValidation.NotBlank,
		validation.Length(3, 2048),
		customValidation.WebhookURL,
	)
}

// Validate checks the create input.
func (i *CreateSubscriptionInput) Validate() error {
	err := validation.ValidateStruct(i, validateTargetURL(&i.TargetURL))
	return customValidation.WrapValidationError(err)
}

// Validate checks the update input.
func (i *UpdateSubscriptionInput) Validate() error {
	err := validation.ValidateStruct(i, validateTargetURL(&i.TargetURL))
	return customValidation.WrapValidationError(err)
}
