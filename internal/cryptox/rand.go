package cryptox

import (
	"crypto/rand"
	"fmt"
)

// NewSalt returns a fresh random key-derivation salt. A salt is generated
// once per vault, at creation, and never regenerated for the same vault.
func NewSalt() ([]byte, error) {
	return randBytes(SaltSize)
}

// NewNonce returns a fresh random AEAD nonce for a single Seal call.
func NewNonce() ([]byte, error) {
	return randBytes(NonceSize)
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("reading random bytes: %w", err)
	}
	return b, nil
}

// Wipe overwrites b with zeros. Every buffer that ever held a passphrase,
// a derived key, or decrypted secret material must be wiped on every exit
// path, including error paths; dereferencing alone is not enough in a
// garbage-collected runtime.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
