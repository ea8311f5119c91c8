package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/cryptox"
)

func (a *App) initVault() {
	pw, err := GetPassphrase("Choose a master passphrase", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if len(pw) == 0 {
		fmt.Fprintln(a.out, "Passphrase must not be empty.")
		return
	}

	confirm, err := GetPassphrase("Repeat passphrase", a.out)
	if err != nil {
		cryptox.Wipe(pw)
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	match := bytes.Equal(pw, confirm)
	cryptox.Wipe(confirm)
	if !match {
		cryptox.Wipe(pw)
		fmt.Fprintln(a.out, "Passphrases do not match.")
		return
	}

	if err := a.session.Initialize(pw); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Vault created at", a.session.Path())
	fmt.Fprintln(a.out, "There is no recovery: a lost passphrase means lost data.")
}

func (a *App) unlock() {
	pw, err := GetPassphrase("Enter master passphrase", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if err := a.session.Unlock(pw); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Vault unlocked.")
}

func (a *App) lock() {
	if err := a.session.Lock(); err != nil {
		if errors.Is(err, common.ErrUnsavedChanges) {
			fmt.Fprintln(a.out, "Unsaved changes. Use 'save' first, or 'discard' to drop them.")
			return
		}
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Vault locked.")
}

func (a *App) discard() {
	if err := a.session.Discard(); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, "Unsaved changes discarded, vault locked.")
}

func (a *App) save() {
	if err := a.session.Save(); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Saved.")
}

func (a *App) verify() {
	pw, err := GetPassphrase("Enter master passphrase", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if err := a.session.Verify(pw); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Passphrase verified.")
}

func (a *App) reset() {
	fmt.Fprintln(a.out, "This deletes the vault file and every record in it. There is no undo.")
	pw, err := GetPassphrase("Enter master passphrase to confirm", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if err := a.session.Reset(pw); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Vault deleted.")
}

func (a *App) export(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: export <path>")
		return
	}
	pw, err := GetPassphrase("Choose a passphrase for the export", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	if err := a.session.Export(args[0], pw); err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Exported to", args[0])
}

func (a *App) importFile(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: import <path>")
		return
	}
	pw, err := GetPassphrase("Enter the import file's passphrase", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	added, err := a.session.Import(args[0], pw)
	if err != nil {
		a.printVaultError(err)
		return
	}
	fmt.Fprintf(a.out, "Imported %d record(s). Use 'save' to persist.\n", added)
}

// printVaultError renders engine errors with user guidance. Wrong
// passphrase and data corruption stay distinguishable so the user is never
// told their data is lost when they only mistyped.
func (a *App) printVaultError(err error) {
	switch {
	case errors.Is(err, common.ErrWrongPassphrase):
		fmt.Fprintln(a.out, "Wrong passphrase.")
	case errors.Is(err, common.ErrCorruptFile):
		fmt.Fprintln(a.out, "The vault file is corrupted or has an unknown format version.")
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "No vault found. Run 'init' to create one.")
	case errors.Is(err, common.ErrAlreadyExists):
		fmt.Fprintln(a.out, "A vault already exists at", a.session.Path())
	case errors.Is(err, common.ErrLocked):
		fmt.Fprintln(a.out, "The vault is locked. Run 'unlock' first.")
	case errors.Is(err, common.ErrAlreadyUnlocked):
		fmt.Fprintln(a.out, "The vault is already unlocked.")
	case errors.Is(err, common.ErrEmptyPassphrase):
		fmt.Fprintln(a.out, "Passphrase must not be empty.")
	default:
		a.log.Error(context.Background(), "vault operation failed", "err", err)
		fmt.Fprintln(a.out, "Error:", err)
	}
}
