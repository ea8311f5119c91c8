// Package vaultfile owns the on-disk vault artifact: the header carrying
// the format version, key-derivation salt, and cipher nonce, followed by
// the authenticated ciphertext of the serialized vault body. It performs
// atomic rewrites and never leaves a half-written file behind.
package vaultfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/cryptox"
	"github.com/dmitrijs2005/passlock/internal/filex"
	"github.com/dmitrijs2005/passlock/internal/models"
)

const (
	appDirName = "passlock"
	fileName   = "vault.plk"

	fileMode = os.FileMode(0o600)
)

// DefaultPath resolves the vault location under the per-user configuration
// directory.
func DefaultPath() (string, error) {
	dir, err := filex.AppDataDir(appDirName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Initialize creates a new vault file at path, sealed under a key derived
// from passphrase with a freshly generated salt. It fails with
// common.ErrAlreadyExists if a file is already present. The passphrase
// buffer and the derived key are wiped before returning, on every path.
func Initialize(path string, passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	if _, err := os.Stat(path); err == nil {
		return common.ErrAlreadyExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating vault directory: %w", err)
	}

	salt, err := cryptox.NewSalt()
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(passphrase, salt)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(key)

	return writeSealed(path, key, salt, models.NewBody())
}

// Unlock reads the vault at path, re-derives the key from passphrase and
// the stored salt, and opens the body.
//
// Outcomes are distinguishable by the caller: common.ErrNotFound when no
// file exists, common.ErrCorruptFile when the header is malformed or the
// version is unknown (detectable before cryptography), and
// common.ErrWrongPassphrase on an authentication tag mismatch. A wrong
// passphrase and a corrupted body are deliberately the same outcome; the
// AEAD cannot tell them apart and the engine does not add an oracle.
//
// On success the derived key is returned for the session to own and wipe.
// The passphrase buffer is wiped before returning, on every path.
func Unlock(path string, passphrase []byte) ([]byte, *models.Body, error) {
	defer cryptox.Wipe(passphrase)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, common.ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading vault file: %w", err)
	}

	h, ciphertext, err := decodeHeader(raw)
	if err != nil {
		return nil, nil, err
	}

	key, err := cryptox.DeriveKey(passphrase, h.salt)
	if err != nil {
		return nil, nil, err
	}

	plaintext, err := cryptox.Open(key, h.nonce, ciphertext, raw[:headerSize])
	if err != nil {
		cryptox.Wipe(key)
		return nil, nil, common.ErrWrongPassphrase
	}
	defer cryptox.Wipe(plaintext)

	var body models.Body
	if err := json.Unmarshal(plaintext, &body); err != nil {
		cryptox.Wipe(key)
		return nil, nil, fmt.Errorf("%w: %v", common.ErrCorruptFile, err)
	}

	return key, &body, nil
}

// Persist re-seals body under key with a fresh nonce and atomically
// replaces the file at path. The salt is read back from the existing
// header: it belongs to the vault and is never regenerated.
func Persist(path string, key []byte, body *models.Body) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return common.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading vault file: %w", err)
	}

	h, _, err := decodeHeader(raw)
	if err != nil {
		return err
	}

	return writeSealed(path, key, h.salt, body)
}

// ReadHeaderNonce returns the nonce stored in the vault header. Exposed for
// nonce-freshness checks in tests and diagnostics; the nonce is not secret.
func ReadHeaderNonce(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vault file: %w", err)
	}
	h, _, err := decodeHeader(raw)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, len(h.nonce))
	copy(nonce, h.nonce)
	return nonce, nil
}

func writeSealed(path string, key, salt []byte, body *models.Body) error {
	plaintext, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("serializing vault body: %w", err)
	}
	defer cryptox.Wipe(plaintext)

	nonce, err := cryptox.NewNonce()
	if err != nil {
		return err
	}

	hdr := header{version: Version, salt: salt, nonce: nonce}.encode()

	ciphertext, err := cryptox.Seal(key, nonce, plaintext, hdr)
	if err != nil {
		return err
	}

	return atomicWrite(path, append(hdr, ciphertext...), fileMode)
}
