// Package memstore provides an in-process ports.TokenStorage for development and tests.
package memstore

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Esangam/Esangam-UI/internal/ports"
)

// TokenStore keeps tokens in a map. Values do not survive a restart.
type TokenStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewTokenStore creates an empty in-memory store.
func NewTokenStore() *TokenStore {
	return &TokenStore{values: make(map[string]string)}
}

// ForOwner returns a view of the store scoped to one owner.
func (s *TokenStore) ForOwner(owner string) ports.TokenStorage {
	return ownerView{store: s, prefix: owner + ":"}
}

func (s *TokenStore) Get(_ context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("token key cannot be empty")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ports.ErrTokenNotFound
	}
	return v, nil
}

func (s *TokenStore) Set(_ context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("token key cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *TokenStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Len reports how many keys are stored across all owners.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

type ownerView struct {
	store  *TokenStore
	prefix string
}

func (v ownerView) Get(ctx context.Context, key string) (string, error) {
	return v.store.Get(ctx, v.prefix+key)
}

func (v ownerView) Set(ctx context.Context, key, value string) error {
	return v.store.Set(ctx, v.prefix+key, value)
}

func (v ownerView) Delete(ctx context.Context, key string) error {
	return v.store.Delete(ctx, v.prefix+key)
}
