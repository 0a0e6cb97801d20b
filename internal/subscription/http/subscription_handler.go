// Package http provides HTTP handlers for webhook subscription management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/webhooks/internal/httputil"
	"github.com/allisson/webhooks/internal/subscription/http/dto"
	subscriptionUseCase "github.com/allisson/webhooks/internal/subscription/usecase"
	customValidation "github.com/allisson/webhooks/internal/validation"
)

// SubscriptionHandler handles HTTP requests for subscription operations.
type SubscriptionHandler struct {
	subscriptionUseCase subscriptionUseCase.SubscriptionUseCase
	logger              *slog.Logger
}

// NewSubscriptionHandler creates a new subscription handler with required dependencies.
func NewSubscriptionHandler(
	subscriptionUseCase subscriptionUseCase.SubscriptionUseCase,
	logger *slog.Logger,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

// CreateHandler registers a new webhook target.
// POST /v1/webhooks - Requires WriteCapability.
// Returns 201 Created with the stored subscription.
func (h *SubscriptionHandler) CreateHandler(c *gin.Context) {
	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	subscription, err := h.subscriptionUseCase.Create(c.Request.Context(), req.ToCreateInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSubscriptionToResponse(subscription))
}

// ListHandler lists subscriptions with offset/limit pagination.
// GET /v1/webhooks?offset=0&limit=50 - Requires ReadCapability.
func (h *SubscriptionHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	subscriptions, err := h.subscriptionUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionsToListResponse(subscriptions))
}

// GetHandler retrieves a subscription by ID.
// GET /v1/webhooks/:id - Requires ReadCapability.
func (h *SubscriptionHandler) GetHandler(c *gin.Context) {
	subscriptionID, ok := h.parseID(c)
	if !ok {
		return
	}

	subscription, err := h.subscriptionUseCase.Get(c.Request.Context(), subscriptionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionToResponse(subscription))
}

// UpdateHandler replaces the target URL of a subscription.
// PUT /v1/webhooks/:id - Requires WriteCapability.
func (h *SubscriptionHandler) UpdateHandler(c *gin.Context) {
	subscriptionID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	subscription, err := h.subscriptionUseCase.Update(c.Request.Context(), subscriptionID, req.ToUpdateInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSubscriptionToResponse(subscription))
}

// DeleteHandler removes a subscription.
// DELETE /v1/webhooks/:id - Requires DeleteCapability.
// Returns 200 OK with the number of removed subscriptions, which is 0 for an unknown ID.
func (h *SubscriptionHandler) DeleteHandler(c *gin.Context) {
	subscriptionID, ok := h.parseID(c)
	if !ok {
		return
	}

	removed, err := h.subscriptionUseCase.Delete(c.Request.Context(), subscriptionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteSubscriptionResponse{RemovedCount: removed})
}

func (h *SubscriptionHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	subscriptionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid subscription id: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return subscriptionID, true
}
