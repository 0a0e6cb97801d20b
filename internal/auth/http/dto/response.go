package dto

import (
	"time"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
)

// IssueTokenResponse carries a freshly issued bearer token.
type IssueTokenResponse struct {
	Token     string    `json:"token"` //nolint:gosec // returned once on issuance
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssueTokenOutputToResponse converts the domain output to an API response.
func MapIssueTokenOutputToResponse(output *authDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		Token:     output.PlainToken,
		TokenType: "Bearer",
		ExpiresAt: output.ExpiresAt,
	}
}
