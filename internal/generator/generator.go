// Package generator produces random passwords from configurable character
// classes using a cryptographically secure source. Each character is drawn
// independently and uniformly from the effective set; there is no "at least
// one per class" rule, so short passwords may lack a class even when its
// flag is enabled.
package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/dmitrijs2005/passlock/internal/common"
)

// Length bounds accepted by Generate.
const (
	MinLength = 4
	MaxLength = 128
)

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars   = "0123456789"
	specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// similarChars are visually confusable and removed by ExcludeSimilar.
	similarChars = "il1Lo0O"

	// ambiguousChars are awkward to transcribe and removed by
	// ExcludeAmbiguous.
	ambiguousChars = "{}[]()/\\'\"`~,;:.<>"
)

// Options selects the character classes and exclusions for one generation.
type Options struct {
	Length           int
	Lower            bool
	Upper            bool
	Digits           bool
	Special          bool
	ExcludeSimilar   bool
	ExcludeAmbiguous bool
}

// DefaultOptions returns the options used when the caller expresses no
// preference: 16 characters from all four classes, confusables excluded.
func DefaultOptions() Options {
	return Options{
		Length:         16,
		Lower:          true,
		Upper:          true,
		Digits:         true,
		Special:        true,
		ExcludeSimilar: true,
	}
}

// Generate returns a random password of exactly opts.Length characters. It
// fails with common.ErrInvalidOptions when the length is out of range or
// when the flags and exclusions leave no candidate characters.
func Generate(opts Options) (string, error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: length must be in [%d, %d], got %d",
			common.ErrInvalidOptions, MinLength, MaxLength, opts.Length)
	}

	set := effectiveCharset(opts)
	if len(set) == 0 {
		return "", fmt.Errorf("%w: effective character set is empty", common.ErrInvalidOptions)
	}

	out := make([]byte, opts.Length)
	max := big.NewInt(int64(len(set)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("reading random index: %w", err)
		}
		out[i] = set[n.Int64()]
	}
	return string(out), nil
}

func effectiveCharset(opts Options) []byte {
	var sb strings.Builder
	if opts.Lower {
		sb.WriteString(lowerChars)
	}
	if opts.Upper {
		sb.WriteString(upperChars)
	}
	if opts.Digits {
		sb.WriteString(digitChars)
	}
	if opts.Special {
		sb.WriteString(specialChars)
	}

	set := sb.String()
	if opts.ExcludeSimilar {
		set = strings.Map(excluding(similarChars), set)
	}
	if opts.ExcludeAmbiguous {
		set = strings.Map(excluding(ambiguousChars), set)
	}
	return []byte(set)
}

func excluding(banned string) func(rune) rune {
	return func(r rune) rune {
		if strings.ContainsRune(banned, r) {
			return -1
		}
		return r
	}
}
