// Package http provides the HTTP server, router and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	authHTTP "github.com/allisson/webhooks/internal/auth/http"
	authService "github.com/allisson/webhooks/internal/auth/service"
	authUseCase "github.com/allisson/webhooks/internal/auth/usecase"
	"github.com/allisson/webhooks/internal/config"
	dispatchHTTP "github.com/allisson/webhooks/internal/dispatch/http"
	"github.com/allisson/webhooks/internal/metrics"
	subscriptionHTTP "github.com/allisson/webhooks/internal/subscription/http"
)

// Server represents the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	writeTimeout time.Duration,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, writeTimeout),
	}
}

// SetupRouter registers middleware and routes.
func (s *Server) SetupRouter(
	cfg *config.Config,
	tokenHandler *authHTTP.TokenHandler,
	subscriptionHandler *subscriptionHTTP.SubscriptionHandler,
	triggerHandler *dispatchHTTP.TriggerHandler,
	tokenUseCase authUseCase.TokenUseCase,
	tokenService authService.TokenService,
	metricsProvider *metrics.Provider,
) {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		cfg.CORSEnabled,
		cfg.CORSAllowOrigins,
		cfg.CORSMaxAge,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	tokenRoutes := []gin.HandlerFunc{}
	if cfg.RateLimitTokenEnabled {
		tokenRoutes = append(tokenRoutes, authHTTP.TokenRateLimitMiddleware(
			cfg.RateLimitTokenRequestsPerSec,
			cfg.RateLimitTokenBurst,
			s.logger,
		))
	}
	tokenRoutes = append(tokenRoutes, tokenHandler.IssueTokenHandler)
	v1.POST("/token", tokenRoutes...)

	webhooks := v1.Group("/webhooks")
	webhooks.Use(authHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, s.logger))
	if cfg.RateLimitEnabled {
		webhooks.Use(authHTTP.RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	requires := func(capability authDomain.Capability) gin.HandlerFunc {
		return authHTTP.AuthorizationMiddleware(capability, s.logger)
	}

	webhooks.GET("", requires(authDomain.ReadCapability), subscriptionHandler.ListHandler)
	webhooks.POST("", requires(authDomain.WriteCapability), subscriptionHandler.CreateHandler)
	webhooks.POST("/trigger", requires(authDomain.TriggerCapability), triggerHandler.TriggerHandler)
	webhooks.GET("/:id", requires(authDomain.ReadCapability), subscriptionHandler.GetHandler)
	webhooks.PUT("/:id", requires(authDomain.WriteCapability), subscriptionHandler.UpdateHandler)
	webhooks.DELETE("/:id", requires(authDomain.DeleteCapability), subscriptionHandler.DeleteHandler)

	s.router = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. It blocks until the server stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured, call SetupRouter first")
	}
	s.server.Handler = s.router
	return listenAndServe(s.server, "http server", s.logger)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return shutdownServer(ctx, s.server, "http server", s.logger)
}

// healthHandler reports that the process is alive.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database is reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
