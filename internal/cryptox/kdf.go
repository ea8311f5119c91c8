// Package cryptox implements the two cryptographic primitives the vault
// engine is built on: Argon2id key derivation from the master passphrase
// and AES-256-GCM authenticated encryption of the serialized vault body.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/passlock/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	// KeySize is the length of a derived key in bytes (AES-256).
	KeySize = 32

	// SaltSize is the length of the key-derivation salt in bytes.
	SaltSize = 16
)

// Argon2id cost parameters. Tuned to cost on the order of 100ms on
// commodity hardware. These are format constants: changing them changes
// the key derived for every existing vault, so they are not configurable
// at runtime.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // KiB
	argonThreads = 4
)

// DeriveKey derives a 32-byte symmetric key from a master passphrase and a
// per-vault random salt using Argon2id. The derivation is deterministic:
// the same (passphrase, salt) pair always yields the same key.
//
// The returned key must be wiped by the caller when no longer needed.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	if len(passphrase) == 0 {
		return nil, common.ErrEmptyPassphrase
	}
	if len(salt) < SaltSize {
		return nil, fmt.Errorf("salt must be at least %d bytes, got %d", SaltSize, len(salt))
	}
	return argon2.IDKey(passphrase, salt, argonTime, argonMemory, argonThreads, KeySize), nil
}
