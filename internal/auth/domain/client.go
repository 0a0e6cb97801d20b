// Package domain defines authentication and authorization domain models.
//
// Clients authenticate with a secret to obtain bearer tokens and are authorized through
// capability-based policies that are matched against request paths.
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/webhooks/internal/validation"
)

// PolicyDocument grants capabilities on a resource path pattern.
type PolicyDocument struct {
	Path         string       `json:"path"`         // Resource path pattern (supports "*" and "/*" wildcards)
	Capabilities []Capability `json:"capabilities"` // Operations allowed on matching paths
}

// Client represents an API client with its authorization policies.
type Client struct {
	ID        uuid.UUID
	Secret    string //nolint:gosec // hashed client secret (not plaintext)
	Name      string
	IsActive  bool
	Policies  []PolicyDocument
	CreatedAt time.Time
}

// matchPath checks if the request path matches the policy path pattern.
//
//   - "*" matches any path
//   - "/v1/webhooks/*" matches "/v1/webhooks/trigger" and anything deeper
//   - "/v1/webhooks/*/x" matches exactly one segment in place of "*"
func matchPath(policyPath, requestPath string) bool {
	if policyPath == "*" {
		return true
	}

	if !strings.Contains(policyPath, "*") {
		return policyPath == requestPath
	}

	if strings.HasSuffix(policyPath, "/*") {
		prefix := strings.TrimSuffix(policyPath, "/*")
		return strings.HasPrefix(requestPath, prefix+"/")
	}

	policyParts := strings.Split(policyPath, "/")
	requestParts := strings.Split(requestPath, "/")
	if len(policyParts) != len(requestParts) {
		return false
	}

	for i := range policyParts {
		if policyParts[i] == "*" {
			continue
		}
		if policyParts[i] != requestParts[i] {
			return false
		}
	}

	return true
}

// IsAllowed reports whether any policy matching path grants the capability.
// Matching is case-sensitive.
func (c *Client) IsAllowed(path string, capability Capability) bool {
	if path == "" || capability == "" {
		return false
	}

	for _, policy := range c.Policies {
		if matchPath(policy.Path, path) && slices.Contains(policy.Capabilities, capability) {
			return true
		}
	}

	return false
}

// CreateClientInput contains the parameters for creating a new client.
// The secret is always generated and cannot be chosen by the caller.
type CreateClientInput struct {
	Name     string           `json:"name"`
	IsActive bool             `json:"is_active"`
	Policies []PolicyDocument `json:"policies"`
}

// Validate checks the client name and every policy document.
func (i *CreateClientInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&i.Policies, validation.Required),
	)
	if err != nil {
		return customValidation.WrapValidationError(err)
	}

	for _, policy := range i.Policies {
		if err := policy.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that the policy has a path and only known capabilities.
func (p PolicyDocument) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Path, validation.Required, customValidation.NotBlank),
		validation.Field(&p.Capabilities,
			validation.Required,
			validation.Each(validation.In(toAny(Capabilities)...)),
		),
	)
	return customValidation.WrapValidationError(err)
}

func toAny(capabilities []Capability) []any {
	values := make([]any, len(capabilities))
	for i, capability := range capabilities {
		values[i] = capability
	}
	return values
}

// CreateClientOutput is returned once when a client is created.
// PlainSecret is never retrievable again.
type CreateClientOutput struct {
	ID          uuid.UUID
	PlainSecret string //nolint:gosec // returned to the caller once, only the hash is stored
}
