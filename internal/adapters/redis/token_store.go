// Package redis provides Redis-based adapters for the Esangam front-end.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Esangam/Esangam-UI/internal/cryptoutil"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

// DefaultPrefix namespaces every key written by the front-end.
const DefaultPrefix = "esangam:browser:"

// TokenStore is a Redis-based ports.TokenStorage.
// Keys are "<prefix><owner>:<key>" and expire after ttl of inactivity.
type TokenStore struct {
	client    redis.UniversalClient
	prefix    string
	ttl       time.Duration
	encryptor cryptoutil.Encryptor
}

var _ ports.TokenStorage = (*TokenStore)(nil)

// TokenStoreOptions configures a TokenStore.
type TokenStoreOptions struct {
	// Prefix namespaces keys; DefaultPrefix when empty.
	Prefix string
	// TTL expires tokens after this much inactivity. Zero keeps them until deleted.
	TTL time.Duration
	// Encryptor seals values at rest. Nil stores plaintext.
	Encryptor cryptoutil.Encryptor
}

// NewTokenStore creates a Redis token store.
func NewTokenStore(client redis.UniversalClient, opts TokenStoreOptions) *TokenStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &TokenStore{
		client:    client,
		prefix:    prefix,
		ttl:       opts.TTL,
		encryptor: opts.Encryptor,
	}
}

// ForOwner returns a view of the store scoped to one owner (a browser id).
func (s *TokenStore) ForOwner(owner string) ports.TokenStorage {
	return &TokenStore{
		client:    s.client,
		prefix:    s.prefix + owner + ":",
		ttl:       s.ttl,
		encryptor: s.encryptor,
	}
}

func (s *TokenStore) redisKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("token key cannot be empty")
	}
	return s.prefix + key, nil
}

// Get returns the stored value and slides its expiry.
func (s *TokenStore) Get(ctx context.Context, key string) (string, error) {
	k, err := s.redisKey(key)
	if err != nil {
		return "", err
	}

	var val string
	if s.ttl > 0 {
		val, err = s.client.GetEx(ctx, k, s.ttl).Result()
	} else {
		val, err = s.client.Get(ctx, k).Result()
	}
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrTokenNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	if s.encryptor == nil {
		return val, nil
	}
	pt, err := s.encryptor.Decrypt(val)
	if err != nil {
		return "", fmt.Errorf("decrypt token: %w", err)
	}
	return string(pt), nil
}

// Set stores value under key, replacing any previous value.
func (s *TokenStore) Set(ctx context.Context, key, value string) error {
	k, err := s.redisKey(key)
	if err != nil {
		return err
	}
	if value == "" {
		return errors.New("token value cannot be empty")
	}
	if s.encryptor != nil {
		sealed, err := s.encryptor.Encrypt([]byte(value))
		if err != nil {
			return fmt.Errorf("encrypt token: %w", err)
		}
		value = sealed
	}
	if err := s.client.Set(ctx, k, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *TokenStore) Delete(ctx context.Context, key string) error {
	k, err := s.redisKey(key)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
