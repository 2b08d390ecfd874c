package cryptoutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestAESGCMEncryptor_RoundTrip(t *testing.T) {
	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	first, err := enc.Encrypt([]byte("tok-1"))
	require.NoError(t, err)
	second, err := enc.Encrypt([]byte("tok-1"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "v1:"))
	assert.NotEqual(t, first, second, "nonce is random")
	assert.NotContains(t, first, "tok-1")

	pt, err := enc.Decrypt(first)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(pt))
}

func TestAESGCMEncryptor_RejectsBadInput(t *testing.T) {
	_, err := NewAESGCMEncryptor([]byte("short"))
	require.Error(t, err)

	enc, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	_, err = enc.Decrypt("tok-1")
	require.ErrorIs(t, err, ErrUnknownCiphertext)

	_, err = enc.Decrypt("v1:!!!")
	require.Error(t, err)

	_, err = enc.Decrypt("v1:AAAA")
	require.Error(t, err)

	sealed, err := enc.Encrypt([]byte("tok-1"))
	require.NoError(t, err)
	tampered := sealed[:len(sealed)-2] + "AA"
	if tampered == sealed {
		tampered = sealed[:len(sealed)-2] + "BB"
	}
	_, err = enc.Decrypt(tampered)
	require.Error(t, err)
}

func TestNewAESGCMEncryptorFromString(t *testing.T) {
	hexKey := "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	fromHex, err := NewAESGCMEncryptorFromString(hexKey)
	require.NoError(t, err)
	raw, err := NewAESGCMEncryptor(testKey())
	require.NoError(t, err)

	sealed, err := fromHex.Encrypt([]byte("tok-1"))
	require.NoError(t, err)
	pt, err := raw.Decrypt(sealed)
	require.NoError(t, err, "hex keys are used as-is")
	assert.Equal(t, "tok-1", string(pt))

	passphrase, err := NewAESGCMEncryptorFromString("correct horse battery staple")
	require.NoError(t, err)
	sealed, err = passphrase.Encrypt([]byte("tok-2"))
	require.NoError(t, err)
	_, err = raw.Decrypt(sealed)
	require.Error(t, err, "passphrases are hashed into a different key")

	_, err = NewAESGCMEncryptorFromString("")
	require.Error(t, err)
}
