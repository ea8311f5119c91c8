// Package models defines the vault record types and the decrypted vault
// body, together with the invariant-preserving operations on them. It does
// no I/O and has no encryption awareness.
package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category classifies an account.
type Category string

const (
	CategorySocial   Category = "social"
	CategoryBanking  Category = "banking"
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryEmail    Category = "email"
	CategoryShopping Category = "shopping"
	CategoryGaming   Category = "gaming"

	// CategoryOther carries a free-text label in Account.CategoryLabel.
	CategoryOther Category = "other"
)

// Categories returns all known categories in display order.
func Categories() []Category {
	return []Category{
		CategorySocial,
		CategoryBanking,
		CategoryWork,
		CategoryPersonal,
		CategoryEmail,
		CategoryShopping,
		CategoryGaming,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategorySocial, CategoryBanking, CategoryWork, CategoryPersonal,
		CategoryEmail, CategoryShopping, CategoryGaming, CategoryOther:
		return true
	}
	return false
}

// Account is one stored secret. The ID is assigned at creation, is unique
// within a vault, and is never reused. The secret value only ever reaches
// disk inside the sealed vault body.
type Account struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Category      Category   `json:"category"`
	CategoryLabel string     `json:"category_label,omitempty"`
	URL           string     `json:"url,omitempty"`
	Username      string     `json:"username,omitempty"`
	Secret        string     `json:"secret"`
	Notes         string     `json:"notes,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastAccessed  *time.Time `json:"last_accessed,omitempty"`
}

// Fields carries the caller-supplied attributes for Add and Update.
// Identity and timestamps are managed by the Body, never by the caller.
type Fields struct {
	Name          string
	Category      Category
	CategoryLabel string
	URL           string
	Username      string
	Secret        string
	Notes         string
	Tags          []string
}

// HasTag reports whether the account carries the given tag.
func (a Account) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// normalizeTags trims, deduplicates, and sorts tags so the set has a
// canonical representation independent of input order.
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	if len(out) == 0 {
		return nil
	}
	return out
}
