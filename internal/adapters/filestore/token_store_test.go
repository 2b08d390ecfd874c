package filestore

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/Esangam/Esangam-UI/internal/domain/auth"
	"github.com/Esangam/Esangam-UI/internal/ports"
)

func TestTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")
	s, err := NewTokenStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = s.Get(ctx, domainauth.TokenKey)
	assert.ErrorIs(t, err, ports.ErrTokenNotFound)

	require.NoError(t, s.Set(ctx, domainauth.TokenKey, "tok-1"))
	got, err := s.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	if runtime.GOOS != "windows" {
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	// A second store over the same file sees the value.
	other, err := NewTokenStore(path)
	require.NoError(t, err)
	got, err = other.Get(ctx, domainauth.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got)

	require.NoError(t, s.Delete(ctx, domainauth.TokenKey))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should be removed once empty")
	require.NoError(t, s.Delete(ctx, domainauth.TokenKey))
}

func TestTokenStore_KeepsOtherKeys(t *testing.T) {
	s, err := NewTokenStore(filepath.Join(t.TempDir(), "c.json"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, domainauth.TokenKey, "tok"))
	require.NoError(t, s.Delete(ctx, domainauth.TokenKey))

	got, err := s.Get(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}

func TestTokenStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	s, err := NewTokenStore(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), domainauth.TokenKey)
	assert.Error(t, err)
}

func TestNewTokenStore_RequiresPath(t *testing.T) {
	_, err := NewTokenStore(" ")
	assert.Error(t, err)
}
