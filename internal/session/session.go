// Package session holds the unlocked vault state for the duration of a
// session: the derived key, the decrypted record collection, and the dirty
// flag. It enforces the Locked/Unlocked state machine and guarantees that
// key material is destroyed on every path out of the Unlocked state.
//
// All methods are safe for concurrent use; a single mutex is the only
// mutual-exclusion boundary, so a persist in flight blocks concurrent
// mutations instead of racing them.
package session

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/awnumar/memguard"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/cryptox"
	"github.com/dmitrijs2005/passlock/internal/logging"
	"github.com/dmitrijs2005/passlock/internal/models"
	"github.com/dmitrijs2005/passlock/internal/vaultfile"
)

// Session is the auth gate in front of one vault file. The zero state is
// Locked; construct with New and wire Close into every process exit path.
type Session struct {
	mu   sync.Mutex
	path string
	log  logging.Logger

	// key and body are non-nil exactly while the session is Unlocked.
	// The derived key lives in a locked buffer that is destroyed, not
	// merely dereferenced, on lock, reset, and close.
	key   *memguard.LockedBuffer
	body  *models.Body
	dirty bool
}

// New returns a Locked session bound to the vault file at path.
func New(path string, log logging.Logger) *Session {
	return &Session{path: path, log: log}
}

// Path returns the vault file location this session is bound to.
func (s *Session) Path() string { return s.path }

// Initialize creates a new vault file with the given passphrase. The
// session stays Locked; call Unlock afterwards. The passphrase buffer is
// wiped before returning.
func (s *Session) Initialize(passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := vaultfile.Initialize(s.path, passphrase); err != nil {
		return err
	}
	s.log.Info(context.Background(), "vault initialized", "path", s.path)
	return nil
}

// Unlock transitions Locked -> Unlocked. On any failure the session stays
// Locked and the specific reason (common.ErrWrongPassphrase,
// common.ErrCorruptFile, common.ErrNotFound) is surfaced unchanged.
// Unlocking an already Unlocked session returns common.ErrAlreadyUnlocked
// without touching its state. The passphrase buffer is wiped before
// returning.
func (s *Session) Unlock(passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != nil {
		return common.ErrAlreadyUnlocked
	}

	key, body, err := vaultfile.Unlock(s.path, passphrase)
	if err != nil {
		return err
	}

	// NewBufferFromBytes moves the key into guarded memory and wipes the
	// source slice.
	s.key = memguard.NewBufferFromBytes(key)
	s.body = body
	s.dirty = false
	s.log.Info(context.Background(), "vault unlocked", "accounts", len(body.Accounts))
	return nil
}

// Unlocked reports whether the session currently holds the vault open.
func (s *Session) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key != nil
}

// Dirty reports whether in-memory changes have not been persisted yet.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Add creates a record in the in-memory vault body and marks the session
// dirty. The change reaches disk on the next Save.
func (s *Session) Add(f models.Fields) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return models.Account{}, common.ErrLocked
	}
	a, err := s.body.Add(f)
	if err != nil {
		return models.Account{}, err
	}
	s.dirty = true
	return a, nil
}

// Update edits an existing record and marks the session dirty.
func (s *Session) Update(id uuid.UUID, f models.Fields) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return models.Account{}, common.ErrLocked
	}
	a, err := s.body.Update(id, f)
	if err != nil {
		return models.Account{}, err
	}
	s.dirty = true
	return a, nil
}

// Remove deletes a record and marks the session dirty.
func (s *Session) Remove(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return common.ErrLocked
	}
	if !s.body.Remove(id) {
		return common.ErrRecordNotFound
	}
	s.dirty = true
	return nil
}

// List returns all records in insertion order.
func (s *Session) List() ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return nil, common.ErrLocked
	}
	return s.body.List(), nil
}

// Get returns one record by id.
func (s *Session) Get(id uuid.UUID) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return models.Account{}, common.ErrLocked
	}
	a, ok := s.body.Get(id)
	if !ok {
		return models.Account{}, common.ErrRecordNotFound
	}
	return a, nil
}

// Save re-encrypts the vault body under a fresh nonce and atomically
// rewrites the file, then clears the dirty flag.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return common.ErrLocked
	}
	if err := vaultfile.Persist(s.path, s.key.Bytes(), s.body); err != nil {
		return err
	}
	s.dirty = false
	s.log.Info(context.Background(), "vault saved", "accounts", len(s.body.Accounts))
	return nil
}

// Lock transitions Unlocked -> Locked. Locking with unsaved changes is
// rejected with common.ErrUnsavedChanges: the engine never decides on its
// own whether pending edits should reach disk. Callers either Save first
// or use Discard. Locking a Locked session is a no-op.
func (s *Session) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return nil
	}
	if s.dirty {
		return common.ErrUnsavedChanges
	}
	s.wipeLocked()
	s.log.Info(context.Background(), "vault locked")
	return nil
}

// Discard drops unsaved changes and locks the session. The on-disk file is
// untouched: it still holds the state as of the last Save.
func (s *Session) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return nil
	}
	s.wipeLocked()
	s.log.Info(context.Background(), "vault locked, unsaved changes discarded")
	return nil
}

// Verify re-derives the key from passphrase and re-attempts decryption of
// the on-disk vault without mutating session state. It is used to confirm
// identity before destructive operations. The passphrase buffer and the
// transient key are wiped before returning.
func (s *Session) Verify(passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	key, _, err := vaultfile.Unlock(s.path, passphrase)
	if err != nil {
		return err
	}
	cryptox.Wipe(key)
	return nil
}

// Export re-seals the current vault body to an arbitrary path under an
// independently supplied passphrase. Requires an unlocked session; the
// passphrase buffer is wiped before returning.
func (s *Session) Export(path string, passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return common.ErrLocked
	}
	if err := vaultfile.Export(path, passphrase, s.body); err != nil {
		return err
	}
	s.log.Info(context.Background(), "vault exported", "path", path)
	return nil
}

// Import opens a vault file at an arbitrary path under its own passphrase
// and merges its records into the current body. Records whose identifier
// already exists are skipped, preserving identifier uniqueness. The merge
// marks the session dirty; nothing reaches disk until Save.
func (s *Session) Import(path string, passphrase []byte) (int, error) {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key == nil {
		return 0, common.ErrLocked
	}

	imported, err := vaultfile.Import(path, passphrase)
	if err != nil {
		return 0, err
	}

	existing := make(map[uuid.UUID]struct{}, len(s.body.Accounts))
	for _, a := range s.body.Accounts {
		existing[a.ID] = struct{}{}
	}

	added := 0
	for _, a := range imported.Accounts {
		if _, ok := existing[a.ID]; ok {
			continue
		}
		s.body.Accounts = append(s.body.Accounts, a)
		added++
	}
	if added > 0 {
		s.dirty = true
	}
	s.log.Info(context.Background(), "vault imported", "path", path, "added", added)
	return added, nil
}

// Reset verifies the passphrase, deletes the vault file, and locks the
// session. The deleted data is irrecoverable.
func (s *Session) Reset(passphrase []byte) error {
	defer cryptox.Wipe(passphrase)

	s.mu.Lock()
	defer s.mu.Unlock()

	key, _, err := vaultfile.Unlock(s.path, passphrase)
	if err != nil {
		return err
	}
	cryptox.Wipe(key)

	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing vault file: %w", err)
	}
	s.wipeLocked()
	s.log.Info(context.Background(), "vault reset", "path", s.path)
	return nil
}

// Close wipes key material and drops plaintext regardless of the dirty
// flag. It is idempotent and must run on every process exit path; defer it
// right after New.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipeLocked()
}

// wipeLocked destroys the key buffer and drops the plaintext body before
// the state flips to Locked. Callers must hold s.mu. Decrypted secrets are
// held in Go strings which cannot be overwritten in place; dropping the
// references here is the best effort the runtime allows, while the derived
// key itself is guaranteed wiped by the locked buffer.
func (s *Session) wipeLocked() {
	if s.key != nil {
		s.key.Destroy()
		s.key = nil
	}
	s.body = nil
	s.dirty = false
}
