package cryptox

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := bytes.Repeat([]byte{0x42}, KeySize)
	return key
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(t)
	nonce, err := NewNonce()
	require.NoError(t, err)

	plaintext := []byte(`{"accounts":[]}`)
	aad := []byte("header")

	ct, err := Seal(key, nonce, plaintext, aad)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, ct)

	got, err := Open(key, nonce, ct, aad)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestOpen_WrongKeyFailsAuthentication(t *testing.T) {
	key := testKey(t)
	nonce, err := NewNonce()
	require.NoError(t, err)

	ct, err := Seal(key, nonce, []byte("secret"), nil)
	require.NoError(t, err)

	other := bytes.Repeat([]byte{0x43}, KeySize)
	_, err = Open(other, nonce, ct, nil)
	require.ErrorIs(t, err, common.ErrAuthFailed)
}

func TestOpen_TamperedCiphertextFailsAuthentication(t *testing.T) {
	key := testKey(t)
	nonce, err := NewNonce()
	require.NoError(t, err)

	ct, err := Seal(key, nonce, []byte("secret"), nil)
	require.NoError(t, err)

	ct[0] ^= 0xff
	_, err = Open(key, nonce, ct, nil)
	require.ErrorIs(t, err, common.ErrAuthFailed)
}

func TestOpen_MismatchedAADFailsAuthentication(t *testing.T) {
	key := testKey(t)
	nonce, err := NewNonce()
	require.NoError(t, err)

	ct, err := Seal(key, nonce, []byte("secret"), []byte("aad-one"))
	require.NoError(t, err)

	_, err = Open(key, nonce, ct, []byte("aad-two"))
	require.ErrorIs(t, err, common.ErrAuthFailed)
}

func TestSeal_RejectsBadKeyAndNonceLengths(t *testing.T) {
	nonce, err := NewNonce()
	require.NoError(t, err)

	_, err = Seal([]byte("short key"), nonce, []byte("x"), nil)
	require.Error(t, err)

	_, err = Seal(testKey(t), []byte("short"), []byte("x"), nil)
	require.Error(t, err)
}

func TestNewNonce_LengthAndFreshness(t *testing.T) {
	n1, err := NewNonce()
	require.NoError(t, err)
	n2, err := NewNonce()
	require.NoError(t, err)

	require.Len(t, n1, NonceSize)
	require.Len(t, n2, NonceSize)
	require.NotEqual(t, n1, n2)
}
