package bootstrap

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/Esangam/Esangam-UI/config"
)

const devSecretLen = 32

// InitLogger initializes the structured logger at level and installs it as the default.
func InitLogger(level slog.Leveler) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
// Callers validate the parts they need.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// SessionSecret returns the key that signs browser cookies.
// In dev mode an unset secret is replaced by a random one, so cookies do not survive a restart.
func SessionSecret(cfg *config.AppConfig, logger *slog.Logger) ([]byte, error) {
	if cfg.Auth.SessionSecret != "" {
		return []byte(cfg.Auth.SessionSecret), nil
	}
	if !cfg.IsDev {
		return nil, errors.New("SESSION_SECRET is required")
	}
	secret := make([]byte, devSecretLen)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	if logger != nil {
		logger.Warn("SESSION_SECRET not set; using a random secret for this process")
	}
	return secret, nil
}
