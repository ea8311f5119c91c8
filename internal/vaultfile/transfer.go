package vaultfile

import (
	"github.com/dmitrijs2005/passlock/internal/cryptox"
	"github.com/dmitrijs2005/passlock/internal/models"
)

// Export re-seals body to an arbitrary path under a separately supplied
// passphrase, with its own fresh salt. An existing file at path is replaced
// atomically. The exported file uses the same format as a regular vault and
// can be opened with Unlock or Import. The passphrase buffer is wiped
// before returning.
func Export(path string, passphrase []byte, body *models.Body) error {
	defer cryptox.Wipe(passphrase)

	salt, err := cryptox.NewSalt()
	if err != nil {
		return err
	}

	key, err := cryptox.DeriveKey(passphrase, salt)
	if err != nil {
		return err
	}
	defer cryptox.Wipe(key)

	return writeSealed(path, key, salt, body)
}

// Import opens a vault file at an arbitrary path under its own passphrase
// and returns the decoded body. The passphrase buffer and the transient key
// are wiped before returning; the caller receives plaintext records only.
func Import(path string, passphrase []byte) (*models.Body, error) {
	key, body, err := Unlock(path, passphrase)
	if err != nil {
		return nil, err
	}
	cryptox.Wipe(key)
	return body, nil
}
