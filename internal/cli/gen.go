package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/generator"
)

func (a *App) generate() {
	pw, err := a.generatePassword()
	if err != nil {
		if errors.Is(err, common.ErrInvalidOptions) {
			fmt.Fprintln(a.out, "Invalid options:", err)
			return
		}
		fmt.Fprintln(a.out, "Error:", err)
		return
	}
	fmt.Fprintln(a.out, pw)

	score := generator.Strength(pw)
	fmt.Fprintf(a.out, "Strength: %d/100 (%s)\n", score, generator.StrengthLabel(score))
}

// generatePassword prompts for generation options and returns a fresh
// password. Empty answers keep the defaults.
func (a *App) generatePassword() (string, error) {
	opts := generator.DefaultOptions()

	lengthText, err := GetSimpleText(a.reader, fmt.Sprintf("Length [%d]", opts.Length), a.out)
	if err != nil {
		return "", err
	}
	if lengthText != "" {
		length, convErr := strconv.Atoi(lengthText)
		if convErr != nil {
			return "", fmt.Errorf("%w: length must be a number", common.ErrInvalidOptions)
		}
		opts.Length = length
	}

	classes, err := GetSimpleText(a.reader, "Classes: any of l(ower) u(pper) d(igits) s(pecial) [luds]", a.out)
	if err != nil {
		return "", err
	}
	if classes != "" {
		opts.Lower, opts.Upper, opts.Digits, opts.Special = false, false, false, false
		for _, r := range classes {
			switch r {
			case 'l':
				opts.Lower = true
			case 'u':
				opts.Upper = true
			case 'd':
				opts.Digits = true
			case 's':
				opts.Special = true
			}
		}
	}

	return generator.Generate(opts)
}
