// Package http provides the HTTP handler that starts a webhook dispatch.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	"github.com/allisson/webhooks/internal/dispatch/http/dto"
	dispatchUseCase "github.com/allisson/webhooks/internal/dispatch/usecase"
	apperrors "github.com/allisson/webhooks/internal/errors"
	"github.com/allisson/webhooks/internal/httputil"
	customValidation "github.com/allisson/webhooks/internal/validation"
)

// TriggerHandler handles HTTP requests that dispatch an event to every subscriber.
type TriggerHandler struct {
	dispatchUseCase dispatchUseCase.DispatchUseCase
	logger          *slog.Logger
}

// NewTriggerHandler creates a new trigger handler with required dependencies.
func NewTriggerHandler(dispatchUseCase dispatchUseCase.DispatchUseCase, logger *slog.Logger) *TriggerHandler {
	return &TriggerHandler{
		dispatchUseCase: dispatchUseCase,
		logger:          logger,
	}
}

// TriggerHandler delivers an event to all registered webhooks and waits for every delivery.
// POST /v1/webhooks/trigger - Requires TriggerCapability.
// The body is optional; without ip_address the caller's address identifies the event.
// Returns 200 OK with the aggregated result, including partial and total delivery failures.
func (h *TriggerHandler) TriggerHandler(c *gin.Context) {
	var req dto.TriggerRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.dispatchUseCase.Trigger(c.Request.Context(), req.ToEventData(c.ClientIP()))
	if err != nil {
		if apperrors.Is(err, dispatchDomain.ErrNoSubscribers) {
			c.JSON(http.StatusNotFound, httputil.ErrorResponse{
				Error:   "not_found",
				Message: dispatchDomain.NoSubscribersMessage,
			})
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDispatchResultToResponse(result))
}
