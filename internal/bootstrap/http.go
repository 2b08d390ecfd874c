package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/Esangam/Esangam-UI/config"
	httpx "github.com/Esangam/Esangam-UI/internal/http"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
	// Errors receives the listener error if the server stops unexpectedly.
	Errors chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Config:   cfg.Config,
		Services: cfg.Services,
	})
	if err != nil {
		return nil, err
	}

	// Start server (logs "starting HTTP server" internally)
	return startServer(logger, handler, cfg.Config.HTTP.Addr, cfg.Errors), nil
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Config   *config.AppConfig
	Services ServiceContainer
}

func routerServices(cfg httpHandlerConfig) (httpx.RouterServices, error) {
	appCfg := cfg.Config
	secret, err := SessionSecret(appCfg, cfg.Logger)
	if err != nil {
		return httpx.RouterServices{}, err
	}
	return httpx.RouterServices{
		Registry: cfg.Services.Registry,
		Platform: cfg.Services.Platform,
		Society:  cfg.Services.Society,
		Members:  cfg.Services.Members,
		CookieStore: httpx.NewCookieStore(httpx.CookieStoreOptions{
			Secret: secret,
			Domain: appCfg.HTTP.CookieDomain,
			Secure: appCfg.HTTP.SecureCookies,
			MaxAge: appCfg.Auth.SessionMaxAge,
		}),
		CSRF: httpx.CSRFConfig{
			CookieDomain: appCfg.HTTP.CookieDomain,
			SecureCookie: appCfg.HTTP.SecureCookies,
			Logger:       cfg.Logger,
		},
		LoginRate:      rate.Limit(appCfg.Auth.LoginRate),
		LoginBurst:     appCfg.Auth.LoginBurst,
		MetricsEnabled: appCfg.Observability.Metrics.IsEnabled(),
		MetricsPath:    appCfg.Observability.Metrics.Path,
		IsDev:          appCfg.IsDev,
		Logger:         cfg.Logger,
	}, nil
}

func buildHTTPHandler(cfg httpHandlerConfig) (http.Handler, error) {
	services, err := routerServices(cfg)
	if err != nil {
		return nil, err
	}
	router, err := httpx.NewRouter(services)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Order: Recover -> Logging -> Compression -> Metrics -> Router
	h := httpx.Metrics()(router)
	if cfg.Config.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.Config.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{Level: cfg.Config.HTTP.CompressionLevel})(h)
	}

	h = httpx.Logging(cfg.Logger)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h, nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string, errCh chan<- error) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	// WriteTimeout stays zero: notification websockets are long-lived.
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context  context.Context
	Server   *http.Server
	Registry *service.SessionRegistry
	Logger   *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
// Browser sessions are closed first so open notification sockets get a close frame.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	if cfg.Registry != nil {
		cfg.Registry.Close()
	}

	// Shutdown HTTP server with timeout
	shutdownCtx, cancel := context.WithTimeout(cfg.Context, 10*time.Second)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
