// Package common defines shared sentinel errors used across the vault
// engine layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Cipher-level errors.
	ErrAuthFailed = errors.New("authentication failed")

	// Persistence-level errors.
	ErrWrongPassphrase = errors.New("wrong passphrase")
	ErrCorruptFile     = errors.New("corrupt vault file")
	ErrNotFound        = errors.New("vault not found")
	ErrAlreadyExists   = errors.New("vault already exists")

	// Session-level errors.
	ErrLocked          = errors.New("vault is locked")
	ErrAlreadyUnlocked = errors.New("vault is already unlocked")
	ErrUnsavedChanges  = errors.New("unsaved changes")

	// Validation errors.
	ErrEmptyPassphrase = errors.New("passphrase must not be empty")
	ErrNameRequired    = errors.New("name must not be empty")
	ErrSecretRequired  = errors.New("secret must not be empty")
	ErrRecordNotFound  = errors.New("record not found")

	// Generator errors.
	ErrInvalidOptions = errors.New("invalid generator options")
)
