package bootstrap

import (
	"log/slog"

	"github.com/Esangam/Esangam-UI/internal/cryptoutil"
)

// CreateEncryptor builds the token encryptor for the Redis store.
// It returns nil (plaintext storage) when the key is empty or unusable, logging a warning.
//
//nolint:ireturn // nil selects plaintext storage.
func CreateEncryptor(key string, logger *slog.Logger) cryptoutil.Encryptor {
	if key == "" {
		if logger != nil {
			logger.Warn("token encryption key is empty, storing tokens in plaintext")
		}
		return nil
	}

	enc, err := cryptoutil.NewAESGCMEncryptorFromString(key)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create token encryptor, storing tokens in plaintext", "error", err)
		}
		return nil
	}
	return enc
}
