package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passlock/internal/common"
)

// SchemaVersion tags the serialized body layout. Bump on any change to the
// JSON structure below.
const SchemaVersion = 1

// Body is the decrypted vault contents: an insertion-ordered collection of
// accounts plus the schema tag and the vault's own creation time. While a
// vault is unlocked the Body is owned exclusively by the session; while
// locked it exists only as sealed bytes on disk.
type Body struct {
	Schema    int       `json:"schema"`
	CreatedAt time.Time `json:"created_at"`
	Accounts  []Account `json:"accounts"`
}

// NewBody returns an empty vault body stamped with the current schema.
func NewBody() *Body {
	return &Body{
		Schema:    SchemaVersion,
		CreatedAt: time.Now().UTC(),
		Accounts:  []Account{},
	}
}

func validateFields(f Fields) error {
	if strings.TrimSpace(f.Name) == "" {
		return common.ErrNameRequired
	}
	if f.Secret == "" {
		return common.ErrSecretRequired
	}
	return nil
}

// Add creates a new account from f, assigns it a fresh identifier, and
// appends it to the collection. Both timestamps are set to now.
func (b *Body) Add(f Fields) (Account, error) {
	if err := validateFields(f); err != nil {
		return Account{}, err
	}
	category := f.Category
	if category == "" {
		category = CategoryOther
	}
	now := time.Now().UTC()
	a := Account{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(f.Name),
		Category:      category,
		CategoryLabel: f.CategoryLabel,
		URL:           f.URL,
		Username:      f.Username,
		Secret:        f.Secret,
		Notes:         f.Notes,
		Tags:          normalizeTags(f.Tags),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	b.Accounts = append(b.Accounts, a)
	return a, nil
}

// Update replaces the mutable fields of the account with the given id.
// The identifier and creation time are immutable; UpdatedAt is refreshed.
func (b *Body) Update(id uuid.UUID, f Fields) (Account, error) {
	if err := validateFields(f); err != nil {
		return Account{}, err
	}
	for i := range b.Accounts {
		if b.Accounts[i].ID != id {
			continue
		}
		category := f.Category
		if category == "" {
			category = CategoryOther
		}
		a := &b.Accounts[i]
		a.Name = strings.TrimSpace(f.Name)
		a.Category = category
		a.CategoryLabel = f.CategoryLabel
		a.URL = f.URL
		a.Username = f.Username
		a.Secret = f.Secret
		a.Notes = f.Notes
		a.Tags = normalizeTags(f.Tags)
		a.UpdatedAt = time.Now().UTC()
		return *a, nil
	}
	return Account{}, common.ErrRecordNotFound
}

// Remove deletes the account with the given id, preserving the insertion
// order of the remaining accounts. It reports whether anything was removed.
func (b *Body) Remove(id uuid.UUID) bool {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			b.Accounts = append(b.Accounts[:i], b.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the account with the given id and stamps its last-accessed
// time.
func (b *Body) Get(id uuid.UUID) (Account, bool) {
	for i := range b.Accounts {
		if b.Accounts[i].ID == id {
			now := time.Now().UTC()
			b.Accounts[i].LastAccessed = &now
			return b.Accounts[i], true
		}
	}
	return Account{}, false
}

// List returns a copy of the accounts in insertion order.
func (b *Body) List() []Account {
	out := make([]Account, len(b.Accounts))
	copy(out, b.Accounts)
	return out
}

// SearchByName returns accounts whose name contains q, case-insensitively.
func (b *Body) SearchByName(q string) []Account {
	q = strings.ToLower(q)
	var out []Account
	for _, a := range b.Accounts {
		if strings.Contains(strings.ToLower(a.Name), q) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCategory returns accounts in the given category.
func (b *Body) FilterByCategory(c Category) []Account {
	var out []Account
	for _, a := range b.Accounts {
		if a.Category == c {
			out = append(out, a)
		}
	}
	return out
}

// FilterByTag returns accounts carrying the given tag.
func (b *Body) FilterByTag(tag string) []Account {
	var out []Account
	for _, a := range b.Accounts {
		if a.HasTag(tag) {
			out = append(out, a)
		}
	}
	return out
}
