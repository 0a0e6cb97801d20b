package app

import (
	"fmt"

	"github.com/allisson/webhooks/internal/database"
	subscriptionCache "github.com/allisson/webhooks/internal/subscription/cache"
	subscriptionHTTP "github.com/allisson/webhooks/internal/subscription/http"
	subscriptionRepository "github.com/allisson/webhooks/internal/subscription/repository"
	subscriptionUseCase "github.com/allisson/webhooks/internal/subscription/usecase"
)

// SubscriptionRepository returns the subscription repository based on database driver.
func (c *Container) SubscriptionRepository() (subscriptionUseCase.SubscriptionRepository, error) {
	var err error
	c.subscriptionRepositoryInit.Do(func() {
		c.subscriptionRepository, err = c.initSubscriptionRepository()
		if err != nil {
			c.initErrors["subscriptionRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subscriptionRepository"]; exists {
		return nil, storedErr
	}
	return c.subscriptionRepository, nil
}

// SubscriptionCache returns the Redis snapshot cache. It returns nil when Redis is disabled.
func (c *Container) SubscriptionCache() (subscriptionUseCase.SubscriptionCache, error) {
	var err error
	c.subscriptionCacheInit.Do(func() {
		c.subscriptionCache, err = c.initSubscriptionCache()
		if err != nil {
			c.initErrors["subscriptionCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subscriptionCache"]; exists {
		return nil, storedErr
	}
	return c.subscriptionCache, nil
}

// SubscriptionUseCase returns the subscription use case.
func (c *Container) SubscriptionUseCase() (subscriptionUseCase.SubscriptionUseCase, error) {
	var err error
	c.subscriptionUseCaseInit.Do(func() {
		c.subscriptionUseCase, err = c.initSubscriptionUseCase()
		if err != nil {
			c.initErrors["subscriptionUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subscriptionUseCase"]; exists {
		return nil, storedErr
	}
	return c.subscriptionUseCase, nil
}

// SubscriptionHandler returns the HTTP handler for subscription management.
func (c *Container) SubscriptionHandler() (*subscriptionHTTP.SubscriptionHandler, error) {
	var err error
	c.subscriptionHandlerInit.Do(func() {
		c.subscriptionHandler, err = c.initSubscriptionHandler()
		if err != nil {
			c.initErrors["subscriptionHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["subscriptionHandler"]; exists {
		return nil, storedErr
	}
	return c.subscriptionHandler, nil
}

// initSubscriptionRepository creates the subscription repository based on the database driver.
func (c *Container) initSubscriptionRepository() (subscriptionUseCase.SubscriptionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for subscription repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverPostgres:
		return subscriptionRepository.NewPostgreSQLSubscriptionRepository(db), nil
	case database.DriverMySQL:
		return subscriptionRepository.NewMySQLSubscriptionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSubscriptionCache creates the Redis cache when Redis is enabled.
func (c *Container) initSubscriptionCache() (subscriptionUseCase.SubscriptionCache, error) {
	if !c.config.RedisEnabled {
		return nil, nil
	}

	client, err := c.RedisClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get redis client for subscription cache: %w", err)
	}

	return subscriptionCache.NewRedisSubscriptionCache(
		client,
		c.config.SubscriptionCachePrefix,
		c.config.SubscriptionCacheTTL,
	), nil
}

// initSubscriptionUseCase creates the subscription use case. The cache decorator sits below the
// metrics decorator so cache hits are measured too.
func (c *Container) initSubscriptionUseCase() (subscriptionUseCase.SubscriptionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for subscription use case: %w", err)
	}

	repository, err := c.SubscriptionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription repository for subscription use case: %w", err)
	}

	outboxRepository, err := c.OutboxRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get outbox repository for subscription use case: %w", err)
	}

	cache, err := c.SubscriptionCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription cache for subscription use case: %w", err)
	}

	useCase := subscriptionUseCase.NewSubscriptionUseCase(txManager, repository, outboxRepository)

	if cache != nil {
		useCase = subscriptionUseCase.NewSubscriptionUseCaseWithCache(useCase, cache, c.Logger())
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for subscription use case: %w", err)
		}
		useCase = subscriptionUseCase.NewSubscriptionUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initSubscriptionHandler creates the subscription HTTP handler.
func (c *Container) initSubscriptionHandler() (*subscriptionHTTP.SubscriptionHandler, error) {
	useCase, err := c.SubscriptionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription use case for subscription handler: %w", err)
	}
	return subscriptionHTTP.NewSubscriptionHandler(useCase, c.Logger()), nil
}
