package config

import (
	"strings"
	"time"
)

// RedisConfig contains Redis configuration for the browser token store.
type RedisConfig struct {
	// Enabled stores tokens in Redis. When false tokens are kept in process memory (dev only).
	Enabled            bool     `env:"ENABLED"              envDefault:"false"`
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`

	// KeyPrefix namespaces token keys per browser.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"esangam:browser:"`

	// TokenTTL expires persisted tokens that are not read for this long. Zero keeps them forever.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// TokenEncryptionKey seals tokens at rest: 64 hex chars are used as the AES-256 key,
	// anything else is hashed. Empty stores plaintext.
	TokenEncryptionKey string `env:"TOKEN_ENCRYPTION_KEY" envDefault:""`
}

// Sanitize applies guardrails to Redis configuration values.
func (r *RedisConfig) Sanitize() {
	r.URI = strings.TrimSpace(r.URI)
	r.KeyPrefix = strings.TrimSpace(r.KeyPrefix)
	r.TokenEncryptionKey = strings.TrimSpace(r.TokenEncryptionKey)
	if r.KeyPrefix == "" {
		r.KeyPrefix = "esangam:browser:"
	}
	if r.DB < 0 {
		r.DB = 0
	}
	if r.TokenTTL < 0 {
		r.TokenTTL = 0
	}
}
