package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/webhooks/internal/errors"
	subscriptionDomain "github.com/allisson/webhooks/internal/subscription/domain"
	"github.com/allisson/webhooks/internal/subscription/http/dto"
	"github.com/allisson/webhooks/internal/subscription/usecase/mocks"
)

func setupTestHandler(t *testing.T) (*SubscriptionHandler, *mocks.MockSubscriptionUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockSubscriptionUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSubscriptionHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func newSubscription() *subscriptionDomain.Subscription {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	return &subscriptionDomain.Subscription{
		ID:        uuid.Must(uuid.NewV7()),
		TargetURL: "https://example.com/hooks",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSubscriptionHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		subscription := newSubscription()

		mockUseCase.On("Create", mock.Anything, &subscriptionDomain.CreateSubscriptionInput{
			TargetURL: subscription.TargetURL,
		}).Return(subscription, nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/webhooks", dto.SubscriptionRequest{
			TargetURL: subscription.TargetURL,
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.SubscriptionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, subscription.ID.String(), response.ID)
		assert.Equal(t, subscription.TargetURL, response.TargetURL)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/webhooks", "{")
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InvalidURL", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/webhooks", dto.SubscriptionRequest{TargetURL: "nope"})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "target_url")
	})

	t.Run("Error_UseCase", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Create", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		c, w := createTestContext(http.MethodPost, "/v1/webhooks", dto.SubscriptionRequest{
			TargetURL: "https://example.com/hooks",
		})
		handler.CreateHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestSubscriptionHandler_ListHandler(t *testing.T) {
	t.Run("Success_DefaultPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		subscription := newSubscription()

		mockUseCase.On("List", mock.Anything, 0, 50).
			Return([]*subscriptionDomain.Subscription{subscription}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/webhooks", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.ListSubscriptionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, subscription.ID.String(), response.Data[0].ID)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("List", mock.Anything, 10, 5).Return([]*subscriptionDomain.Subscription{}, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/webhooks?offset=10&limit=5", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[]}`, w.Body.String())
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/webhooks?limit=1000", nil)
		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubscriptionHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		subscription := newSubscription()

		mockUseCase.On("Get", mock.Anything, subscription.ID).Return(subscription, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/webhooks/"+subscription.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: subscription.ID.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, id).Return(nil, subscriptionDomain.ErrSubscriptionNotFound).Once()

		c, w := createTestContext(http.MethodGet, "/v1/webhooks/"+id.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodGet, "/v1/webhooks/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		handler.GetHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSubscriptionHandler_UpdateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		subscription := newSubscription()
		subscription.TargetURL = "https://example.com/v2"

		mockUseCase.On("Update", mock.Anything, subscription.ID, &subscriptionDomain.UpdateSubscriptionInput{
			TargetURL: "https://example.com/v2",
		}).Return(subscription, nil).Once()

		c, w := createTestContext(http.MethodPut, "/v1/webhooks/"+subscription.ID.String(), dto.SubscriptionRequest{
			TargetURL: "https://example.com/v2",
		})
		c.Params = gin.Params{{Key: "id", Value: subscription.ID.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "https://example.com/v2")
	})

	t.Run("Error_InvalidInputFromUseCase", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		id := uuid.Must(uuid.NewV7())

		mockUseCase.On("Update", mock.Anything, id, mock.Anything).
			Return(nil, apperrors.Wrap(apperrors.ErrInvalidInput, "bad")).
			Once()

		c, w := createTestContext(http.MethodPut, "/v1/webhooks/"+id.String(), dto.SubscriptionRequest{
			TargetURL: "https://example.com/v2",
		})
		c.Params = gin.Params{{Key: "id", Value: id.String()}}
		handler.UpdateHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestSubscriptionHandler_DeleteHandler(t *testing.T) {
	tests := []struct {
		name    string
		removed int64
		want    string
	}{
		{name: "removed", removed: 1, want: `{"removed_count":1}`},
		{name: "unknown id", removed: 0, want: `{"removed_count":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mockUseCase := setupTestHandler(t)
			id := uuid.Must(uuid.NewV7())

			mockUseCase.On("Delete", mock.Anything, id).Return(tt.removed, nil).Once()

			c, w := createTestContext(http.MethodDelete, "/v1/webhooks/"+id.String(), nil)
			c.Params = gin.Params{{Key: "id", Value: id.String()}}
			handler.DeleteHandler(c)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}
