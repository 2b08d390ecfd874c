package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Esangam/Esangam-UI/config"
)

const shutdownWaitTimeout = 10 * time.Second

// RunConfig contains everything Run needs to serve the front-end.
type RunConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// Run serves HTTP and sweeps idle browser sessions until SIGINT/SIGTERM, ctx is done,
// or the server fails.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sweeperDone := make(chan struct{})
	go func() {
		defer close(sweeperDone)
		cfg.Services.Registry.Run(serviceCtx)
	}()

	errCh := make(chan error, 1)
	server, err := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		Errors:   errCh,
	})
	if err != nil {
		cancel()
		<-sweeperDone
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
		logger.Info("shutting down services...")
	case <-ctx.Done():
		logger.Info("context done, shutting down")
	case runErr = <-errCh:
		logger.Error("service error", "error", runErr)
	}

	// Shutdown gets a fresh context; serviceCtx may already be cancelled.
	if err := ShutdownHTTPServer(ShutdownConfig{
		Context:  context.WithoutCancel(ctx),
		Server:   server,
		Registry: cfg.Services.Registry,
		Logger:   logger,
	}); err != nil {
		logger.Error("graceful stop failed", "error", err)
		runErr = errors.Join(runErr, err)
	}

	cancel()
	waitForService(sweeperDone, "session sweeper", logger)
	return runErr
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
