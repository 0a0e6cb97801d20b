package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	authService "github.com/allisson/webhooks/internal/auth/service"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// tokenUseCase implements TokenUseCase.
type tokenUseCase struct {
	tokenExpiration time.Duration
	clientRepo      ClientRepository
	tokenRepo       TokenRepository
	secretService   authService.SecretService
	tokenService    authService.TokenService
}

// Issue authenticates the client and persists a token that expires after the configured TTL.
func (t *tokenUseCase) Issue(
	ctx context.Context,
	issueTokenInput *authDomain.IssueTokenInput,
) (*authDomain.IssueTokenOutput, error) {
	client, err := t.clientRepo.Get(ctx, issueTokenInput.ClientID)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !t.secretService.CompareSecret(issueTokenInput.ClientSecret, client.Secret) {
		return nil, authDomain.ErrInvalidCredentials
	}

	// The active flag is only revealed to callers holding the right secret.
	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	plainToken, tokenHash, err := t.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	token := &authDomain.Token{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: tokenHash,
		ClientID:  client.ID,
		ExpiresAt: now.Add(t.tokenExpiration),
		CreatedAt: now,
	}

	if err := t.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &authDomain.IssueTokenOutput{
		PlainToken: plainToken,
		ExpiresAt:  token.ExpiresAt,
	}, nil
}

// Authenticate returns the active client owning a usable token.
func (t *tokenUseCase) Authenticate(ctx context.Context, tokenHash string) (*authDomain.Client, error) {
	token, err := t.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrTokenNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.IsUsable(time.Now().UTC()) {
		return nil, authDomain.ErrInvalidCredentials
	}

	client, err := t.clientRepo.Get(ctx, token.ClientID)
	if err != nil {
		if apperrors.Is(err, authDomain.ErrClientNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !client.IsActive {
		return nil, authDomain.ErrClientInactive
	}

	return client, nil
}

// NewTokenUseCase creates a new TokenUseCase issuing tokens valid for tokenExpiration.
func NewTokenUseCase(
	tokenExpiration time.Duration,
	clientRepo ClientRepository,
	tokenRepo TokenRepository,
	secretService authService.SecretService,
	tokenService authService.TokenService,
) TokenUseCase {
	return &tokenUseCase{
		tokenExpiration: tokenExpiration,
		clientRepo:      clientRepo,
		tokenRepo:       tokenRepo,
		secretService:   secretService,
		tokenService:    tokenService,
	}
}
