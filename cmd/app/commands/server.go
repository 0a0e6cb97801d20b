package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/webhooks/internal/app"
	"github.com/allisson/webhooks/internal/config"
)

// shutdownTimeout bounds how long the servers get to drain in-flight requests.
const shutdownTimeout = 30 * time.Second

// serverRunner is the subset of the API and metrics servers used by RunServer.
type serverRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// worker is a background loop that runs until its context is cancelled.
type worker interface {
	Start(ctx context.Context) error
}

// RunServer starts the HTTP server, the metrics server and the outbox worker.
// Blocks until SIGINT/SIGTERM is received or one of them fails, then shuts everything down.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()

	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	defer closeContainer(container, logger)

	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	servers := []serverRunner{server}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}
	if metricsServer != nil {
		servers = append(servers, metricsServer)
	}

	var workers []worker
	if cfg.OutboxEnabled {
		outboxUseCase, err := container.OutboxUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize outbox worker: %w", err)
		}
		workers = append(workers, outboxUseCase)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return runUntilDone(ctx, logger, servers, workers)
}

// runUntilDone starts every server and worker and waits for ctx to be cancelled or any of
// them to fail. Servers are shut down in both cases; a clean shutdown returns nil.
func runUntilDone(ctx context.Context, logger *slog.Logger, servers []serverRunner, workers []worker) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, s := range servers {
		g.Go(func() error {
			return s.Start(gctx)
		})
	}

	for _, w := range workers {
		g.Go(func() error {
			if err := w.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("component failed, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, s := range servers {
			if err := s.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}
