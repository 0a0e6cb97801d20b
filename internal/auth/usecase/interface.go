// Package usecase implements client management and bearer token authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
)

// ClientRepository defines persistence operations for API clients.
type ClientRepository interface {
	// Create stores a new client.
	Create(ctx context.Context, client *authDomain.Client) error

	// Get retrieves a client by ID. Returns ErrClientNotFound if not found.
	Get(ctx context.Context, clientID uuid.UUID) (*authDomain.Client, error)
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	// Create stores a new token.
	Create(ctx context.Context, token *authDomain.Token) error

	// GetByTokenHash retrieves a token by its hash. Returns ErrTokenNotFound if not found.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.Token, error)
}

// ClientUseCase manages API clients.
type ClientUseCase interface {
	// Create validates the input, generates a secret and stores the client with the secret hash.
	// The plain secret is only returned here.
	Create(
		ctx context.Context,
		createClientInput *authDomain.CreateClientInput,
	) (*authDomain.CreateClientOutput, error)
}

// TokenUseCase exchanges client credentials for bearer tokens and resolves tokens to clients.
type TokenUseCase interface {
	// Issue verifies the client credentials and stores a new token hash.
	// Unknown clients and wrong secrets both return ErrInvalidCredentials.
	Issue(
		ctx context.Context,
		issueTokenInput *authDomain.IssueTokenInput,
	) (*authDomain.IssueTokenOutput, error)

	// Authenticate resolves a token hash to its client. Unknown, expired and revoked tokens
	// return ErrInvalidCredentials; a disabled client returns ErrClientInactive.
	Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error)
}
