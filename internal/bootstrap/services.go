package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/Esangam/Esangam-UI/config"
	"github.com/Esangam/Esangam-UI/internal/adapters/memstore"
	redisadapter "github.com/Esangam/Esangam-UI/internal/adapters/redis"
	"github.com/Esangam/Esangam-UI/internal/backend"
	"github.com/Esangam/Esangam-UI/internal/ports"
	"github.com/Esangam/Esangam-UI/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Backend  *backend.Client
	Tokens   ports.TokenStorageProvider
	Registry *service.SessionRegistry
	Platform *service.PlatformService
	Society  *service.SocietyAdminService
	Members  *service.MemberService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient backs the token store; nil selects the in-memory store.
	RedisClient redis.UniversalClient
	Clock       clockwork.Clock
	Logger      *slog.Logger
}

// NewBackendClient builds the Sangam backend client from config.
func NewBackendClient(cfg config.BackendConfig, logger *slog.Logger) (*backend.Client, error) {
	client, err := backend.New(backend.Config{
		BaseURL: cfg.URL,
		Timeout: cfg.Timeout,
		Breaker: backend.BreakerConfig{
			MaxRequests:         cfg.Breaker.HalfOpenRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.OpenTimeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	return client, nil
}

//nolint:ireturn // the token store is chosen at runtime.
func newTokenStore(cfg *config.AppConfig, client redis.UniversalClient, logger *slog.Logger) ports.TokenStorageProvider {
	if client != nil {
		return redisadapter.NewTokenStore(client, redisadapter.TokenStoreOptions{
			Prefix:    cfg.Redis.KeyPrefix,
			TTL:       cfg.Redis.TokenTTL,
			Encryptor: CreateEncryptor(cfg.Redis.TokenEncryptionKey, logger),
		})
	}
	logger.Warn("redis disabled; browser tokens are kept in memory and lost on restart")
	return memstore.NewTokenStore()
}

// NewServices wires the backend client, token store, session registry and page services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps require a config")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	client, err := NewBackendClient(cfg.Backend, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	tokens := newTokenStore(cfg, deps.RedisClient, logger)

	registry := service.NewSessionRegistry(service.SessionRegistryOptions{
		Identity: client,
		Tokens:   tokens,
		Streamer: client,
		Clock:    deps.Clock,
		Logger:   logger,
		Config: service.SessionRegistryConfig{
			IdleTimeout:    cfg.Auth.IdleTimeout,
			RestoreWait:    cfg.Auth.RestoreWait,
			RestoreTimeout: cfg.Backend.Timeout,
		},
	})

	return ServiceContainer{
		Backend:  client,
		Tokens:   tokens,
		Registry: registry,
		Platform: service.NewPlatformService(service.PlatformServiceOptions{API: client, Logger: logger}),
		Society:  service.NewSocietyAdminService(service.SocietyAdminServiceOptions{API: client, Logger: logger}),
		Members:  service.NewMemberService(service.MemberServiceOptions{API: client, Logger: logger}),
	}, nil
}
