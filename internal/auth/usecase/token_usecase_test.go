package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	"github.com/allisson/webhooks/internal/auth/usecase"
	"github.com/allisson/webhooks/internal/auth/usecase/mocks"
)

type tokenFixture struct {
	clientRepo    *mocks.MockClientRepository
	tokenRepo     *mocks.MockTokenRepository
	secretService *mocks.MockSecretService
	tokenService  *mocks.MockTokenService
	useCase       usecase.TokenUseCase
}

func newTokenFixture(t *testing.T) *tokenFixture {
	t.Helper()
	f := &tokenFixture{
		clientRepo:    &mocks.MockClientRepository{},
		tokenRepo:     &mocks.MockTokenRepository{},
		secretService: &mocks.MockSecretService{},
		tokenService:  &mocks.MockTokenService{},
	}
	f.useCase = usecase.NewTokenUseCase(time.Hour, f.clientRepo, f.tokenRepo, f.secretService, f.tokenService)
	t.Cleanup(func() {
		f.clientRepo.AssertExpectations(t)
		f.tokenRepo.AssertExpectations(t)
		f.secretService.AssertExpectations(t)
		f.tokenService.AssertExpectations(t)
	})
	return f
}

func activeClient() *authDomain.Client {
	return &authDomain.Client{
		ID:       uuid.Must(uuid.NewV7()),
		Secret:   "hashed-secret",
		Name:     "billing",
		IsActive: true,
	}
}

func TestTokenUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()
		input := &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"}

		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()
		f.secretService.On("CompareSecret", "plain-secret", "hashed-secret").Return(true).Once()
		f.tokenService.On("GenerateToken").Return("whk_plain", "token-hash", nil).Once()
		f.tokenRepo.On("Create", ctx, mock.MatchedBy(func(token *authDomain.Token) bool {
			return token.TokenHash == "token-hash" &&
				token.ClientID == client.ID &&
				token.RevokedAt == nil &&
				token.ExpiresAt.Sub(token.CreatedAt) == time.Hour
		})).Return(nil).Once()

		before := time.Now().UTC()
		output, err := f.useCase.Issue(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "whk_plain", output.PlainToken)
		assert.WithinDuration(t, before.Add(time.Hour), output.ExpiresAt, 5*time.Second)
	})

	t.Run("UnknownClient", func(t *testing.T) {
		f := newTokenFixture(t)
		clientID := uuid.Must(uuid.NewV7())

		f.clientRepo.On("Get", ctx, clientID).Return(nil, authDomain.ErrClientNotFound).Once()

		_, err := f.useCase.Issue(ctx, &authDomain.IssueTokenInput{ClientID: clientID, ClientSecret: "x"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()

		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()
		f.secretService.On("CompareSecret", "wrong", "hashed-secret").Return(false).Once()

		_, err := f.useCase.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "wrong"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("InactiveClient", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()
		client.IsActive = false

		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()
		f.secretService.On("CompareSecret", "plain-secret", "hashed-secret").Return(true).Once()

		_, err := f.useCase.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"})
		assert.ErrorIs(t, err, authDomain.ErrClientInactive)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()

		f.clientRepo.On("Get", ctx, client.ID).Return(nil, assert.AnError).Once()

		_, err := f.useCase.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "x"})
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("TokenCreateError", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()

		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()
		f.secretService.On("CompareSecret", "plain-secret", "hashed-secret").Return(true).Once()
		f.tokenService.On("GenerateToken").Return("whk_plain", "token-hash", nil).Once()
		f.tokenRepo.On("Create", ctx, mock.Anything).Return(assert.AnError).Once()

		output, err := f.useCase.Issue(ctx, &authDomain.IssueTokenInput{ClientID: client.ID, ClientSecret: "plain-secret"})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, output)
	})
}

func TestTokenUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()
	usableToken := func(clientID uuid.UUID) *authDomain.Token {
		now := time.Now().UTC()
		return &authDomain.Token{
			ID:        uuid.Must(uuid.NewV7()),
			TokenHash: "token-hash",
			ClientID:  clientID,
			ExpiresAt: now.Add(time.Hour),
			CreatedAt: now,
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(usableToken(client.ID), nil).Once()
		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()

		got, err := f.useCase.Authenticate(ctx, "token-hash")
		require.NoError(t, err)
		assert.Equal(t, client, got)
	})

	t.Run("UnknownToken", func(t *testing.T) {
		f := newTokenFixture(t)

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(nil, authDomain.ErrTokenNotFound).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		f := newTokenFixture(t)
		token := usableToken(uuid.Must(uuid.NewV7()))
		token.ExpiresAt = time.Now().UTC().Add(-time.Minute)

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(token, nil).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("RevokedToken", func(t *testing.T) {
		f := newTokenFixture(t)
		token := usableToken(uuid.Must(uuid.NewV7()))
		revokedAt := time.Now().UTC()
		token.RevokedAt = &revokedAt

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(token, nil).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("ClientGone", func(t *testing.T) {
		f := newTokenFixture(t)
		token := usableToken(uuid.Must(uuid.NewV7()))

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(token, nil).Once()
		f.clientRepo.On("Get", ctx, token.ClientID).Return(nil, authDomain.ErrClientNotFound).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
	})

	t.Run("InactiveClient", func(t *testing.T) {
		f := newTokenFixture(t)
		client := activeClient()
		client.IsActive = false

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(usableToken(client.ID), nil).Once()
		f.clientRepo.On("Get", ctx, client.ID).Return(client, nil).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, authDomain.ErrClientInactive)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		f := newTokenFixture(t)

		f.tokenRepo.On("GetByTokenHash", ctx, "token-hash").Return(nil, assert.AnError).Once()

		_, err := f.useCase.Authenticate(ctx, "token-hash")
		assert.ErrorIs(t, err, assert.AnError)
	})
}
