package app

import (
	"fmt"

	dispatchHTTP "github.com/allisson/webhooks/internal/dispatch/http"
	dispatchService "github.com/allisson/webhooks/internal/dispatch/service"
	dispatchUseCase "github.com/allisson/webhooks/internal/dispatch/usecase"
)

// Sender returns the HTTP delivery sender.
func (c *Container) Sender() (dispatchService.Sender, error) {
	var err error
	c.senderInit.Do(func() {
		c.sender, err = c.initSender()
		if err != nil {
			c.initErrors["sender"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["sender"]; exists {
		return nil, storedErr
	}
	return c.sender, nil
}

// DispatchUseCase returns the dispatch engine.
func (c *Container) DispatchUseCase() (dispatchUseCase.DispatchUseCase, error) {
	var err error
	c.dispatchUseCaseInit.Do(func() {
		c.dispatchUseCase, err = c.initDispatchUseCase()
		if err != nil {
			c.initErrors["dispatchUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["dispatchUseCase"]; exists {
		return nil, storedErr
	}
	return c.dispatchUseCase, nil
}

// TriggerHandler returns the HTTP handler for dispatch triggers.
func (c *Container) TriggerHandler() (*dispatchHTTP.TriggerHandler, error) {
	var err error
	c.triggerHandlerInit.Do(func() {
		c.triggerHandler, err = c.initTriggerHandler()
		if err != nil {
			c.initErrors["triggerHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["triggerHandler"]; exists {
		return nil, storedErr
	}
	return c.triggerHandler, nil
}

// senderConfig maps the dispatch settings onto the sender's retry policy.
func (c *Container) senderConfig() dispatchService.HTTPSenderConfig {
	senderConfig := dispatchService.DefaultHTTPSenderConfig()
	senderConfig.MaxRetries = c.config.DispatchMaxRetries
	senderConfig.BaseDelay = c.config.DispatchBaseDelay
	senderConfig.MaxDelay = c.config.DispatchMaxDelay
	senderConfig.RequestTimeout = c.config.DispatchRequestTimeout
	return senderConfig
}

// dispatchConfig maps the dispatch settings onto the batching and pacing policy.
func (c *Container) dispatchConfig() dispatchUseCase.Config {
	dispatchConfig := dispatchUseCase.DefaultConfig()
	dispatchConfig.Sizing.Threshold = c.config.DispatchBatchThreshold
	dispatchConfig.Sizing.Divisor = c.config.DispatchBatchDivisor
	dispatchConfig.Sizing.MaxBatchItems = c.config.DispatchMaxBatchItems
	dispatchConfig.PacingInterval = c.config.DispatchPacingInterval
	return dispatchConfig
}

// initSender creates the HTTP sender with delivery metrics.
func (c *Container) initSender() (dispatchService.Sender, error) {
	deliveryMetrics, err := c.DeliveryMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery metrics for sender: %w", err)
	}
	return dispatchService.NewHTTPSender(nil, c.senderConfig(), deliveryMetrics, c.Logger()), nil
}

// initDispatchUseCase creates the dispatch engine reading subscribers through the subscription
// use case, so a configured cache serves the snapshot.
func (c *Container) initDispatchUseCase() (dispatchUseCase.DispatchUseCase, error) {
	lister, err := c.SubscriptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription use case for dispatch use case: %w", err)
	}

	sender, err := c.Sender()
	if err != nil {
		return nil, fmt.Errorf("failed to get sender for dispatch use case: %w", err)
	}

	useCase := dispatchUseCase.NewDispatchUseCase(c.dispatchConfig(), lister, sender, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for dispatch use case: %w", err)
		}
		return dispatchUseCase.NewDispatchUseCaseWithMetrics(useCase, businessMetrics), nil
	}

	return useCase, nil
}

// initTriggerHandler creates the trigger HTTP handler.
func (c *Container) initTriggerHandler() (*dispatchHTTP.TriggerHandler, error) {
	useCase, err := c.DispatchUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch use case for trigger handler: %w", err)
	}
	return dispatchHTTP.NewTriggerHandler(useCase, c.Logger()), nil
}
