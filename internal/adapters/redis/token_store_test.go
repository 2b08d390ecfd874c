package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Esangam/Esangam-UI/internal/cryptoutil"
	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/ports"
	"github.com/Esangam/Esangam-UI/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestTokenStore_SetGetDelete(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{Prefix: "test:browser:", TTL: time.Hour}).ForOwner("b1")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domainauth.TokenKey, "tok-1"))

	got, err := store.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	raw, err := client.Get(ctx, "test:browser:b1:esangam_token").Result()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", raw)

	require.NoError(t, store.Delete(ctx, domainauth.TokenKey))
	_, err = store.Get(ctx, domainauth.TokenKey)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)

	// Deleting twice is fine.
	require.NoError(t, store.Delete(ctx, domainauth.TokenKey))
}

func TestTokenStore_OwnersAreIsolated(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	base := NewTokenStore(client, TokenStoreOptions{TTL: time.Hour})
	a, b := base.ForOwner("a"), base.ForOwner("b")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, domainauth.TokenKey, "tok-a"))
	_, err := b.Get(ctx, domainauth.TokenKey)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)
}

func TestTokenStore_TTL(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewTokenStore(client, TokenStoreOptions{Prefix: "test:ttl:", TTL: 2 * time.Second}).ForOwner("x")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, domainauth.TokenKey, "tok"))

	ttl, err := client.TTL(ctx, "test:ttl:x:esangam_token").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 2*time.Second)
}

func TestTokenStore_RejectsEmptyKeyAndValue(t *testing.T) {
	store := NewTokenStore(nil, TokenStoreOptions{})
	ctx := context.Background()
	assert.Error(t, store.Set(ctx, "", "v"))
	assert.Error(t, store.Set(ctx, "k", ""))
	_, err := store.Get(ctx, " ")
	assert.Error(t, err)
}

func TestTokenStore_EncryptsAtRest(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	enc, err := cryptoutil.NewAESGCMEncryptorFromString("test-token-key")
	require.NoError(t, err)
	store := NewTokenStore(client, TokenStoreOptions{Prefix: "test:enc:", TTL: time.Hour, Encryptor: enc}).ForOwner("b1")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domainauth.TokenKey, "tok-secret"))

	raw, err := client.Get(ctx, "test:enc:b1:esangam_token").Result()
	require.NoError(t, err)
	assert.NotContains(t, raw, "tok-secret")

	got, err := store.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-secret", got)

	// A value written before encryption was enabled cannot be opened.
	require.NoError(t, client.Set(ctx, "test:enc:b1:esangam_token", "tok-plain", time.Hour).Err())
	_, err = store.Get(ctx, domainauth.TokenKey)
	require.ErrorIs(t, err, cryptoutil.ErrUnknownCiphertext)
}
