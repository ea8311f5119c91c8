// Package cli provides the interactive passlock command-line client.
//
// It wires configuration, the vault session, and an interactive REPL.
// Typical flow: unlock (or initialize) the vault, run record commands, save,
// and lock on exit.
//
// Key features:
//   - Initialize, unlock, lock, verify, and reset the vault
//   - Add, edit, remove, show, and list account records
//   - Generate random passwords
//   - Export to and import from encrypted backup files
//
// The CLI is a thin consumer of the engine: every rule it enforces lives in
// the session and persistence layers, not here.
package cli
