package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/dmitrijs2005/passlock/internal/common"
)

// NonceSize is the length of the AES-GCM nonce in bytes.
const NonceSize = 12

// Seal encrypts plaintext with AES-256-GCM under the given key and nonce,
// binding aad (which may be nil) into the authentication tag. The tag is
// appended to the returned ciphertext.
//
// The nonce must be freshly random for every call under a given key.
// Reusing a (key, nonce) pair destroys confidentiality; the persistence
// layer generates a new nonce on every write.
func Seal(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// Open decrypts ciphertext produced by Seal. A tag mismatch (wrong key,
// tampered ciphertext, or mismatched aad) is reported as
// common.ErrAuthFailed; it is an expected outcome on wrong-passphrase
// attempts, not an I/O fault. The tag comparison inside GCM is
// constant-time.
func Open(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, common.ErrAuthFailed
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
