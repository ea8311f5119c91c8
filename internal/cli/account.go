package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/models"
)

func (a *App) list() {
	accounts, err := a.session.List()
	if err != nil {
		a.printVaultError(err)
		return
	}
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No records.")
		return
	}
	for _, acc := range accounts {
		fmt.Fprintf(a.out, "%s  %-20s %-10s %s\n", acc.ID, acc.Name, acc.Category, acc.Username)
	}
}

func (a *App) show(args []string) {
	id, ok := a.parseID(args, "show")
	if !ok {
		return
	}

	acc, err := a.session.Get(id)
	if err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			fmt.Fprintln(a.out, "No record with that id.")
			return
		}
		a.printVaultError(err)
		return
	}

	fmt.Fprintln(a.out, "Name:    ", acc.Name)
	fmt.Fprintln(a.out, "Category:", a.formatCategory(acc))
	if acc.URL != "" {
		fmt.Fprintln(a.out, "URL:     ", acc.URL)
	}
	if acc.Username != "" {
		fmt.Fprintln(a.out, "Username:", acc.Username)
	}
	fmt.Fprintln(a.out, "Secret:  ", acc.Secret)
	if acc.Notes != "" {
		fmt.Fprintln(a.out, "Notes:   ", acc.Notes)
	}
	if len(acc.Tags) > 0 {
		fmt.Fprintln(a.out, "Tags:    ", strings.Join(acc.Tags, ", "))
	}
	fmt.Fprintln(a.out, "Created: ", acc.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(a.out, "Updated: ", acc.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func (a *App) add() {
	f, ok := a.promptFields(models.Fields{})
	if !ok {
		return
	}

	acc, err := a.session.Add(f)
	if err != nil {
		a.printFieldsError(err)
		return
	}
	fmt.Fprintln(a.out, "Added", acc.ID)
	fmt.Fprintln(a.out, "Use 'save' to persist.")
}

func (a *App) edit(args []string) {
	id, ok := a.parseID(args, "edit")
	if !ok {
		return
	}

	current, err := a.session.Get(id)
	if err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			fmt.Fprintln(a.out, "No record with that id.")
			return
		}
		a.printVaultError(err)
		return
	}

	f, ok := a.promptFields(models.Fields{
		Name:          current.Name,
		Category:      current.Category,
		CategoryLabel: current.CategoryLabel,
		URL:           current.URL,
		Username:      current.Username,
		Secret:        current.Secret,
		Notes:         current.Notes,
		Tags:          current.Tags,
	})
	if !ok {
		return
	}

	if _, err := a.session.Update(id, f); err != nil {
		a.printFieldsError(err)
		return
	}
	fmt.Fprintln(a.out, "Updated. Use 'save' to persist.")
}

func (a *App) remove(args []string) {
	id, ok := a.parseID(args, "remove")
	if !ok {
		return
	}

	if err := a.session.Remove(id); err != nil {
		if errors.Is(err, common.ErrRecordNotFound) {
			fmt.Fprintln(a.out, "No record with that id.")
			return
		}
		a.printVaultError(err)
		return
	}
	fmt.Fprintln(a.out, "Removed. Use 'save' to persist.")
}

// promptFields collects record fields interactively. Defaults from prior
// values are kept when the user enters nothing.
func (a *App) promptFields(defaults models.Fields) (models.Fields, bool) {
	f := defaults

	name, err := GetSimpleText(a.reader, a.promptWithDefault("Name", defaults.Name), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if name != "" {
		f.Name = name
	}

	cats := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		cats = append(cats, string(c))
	}
	cat, err := GetSimpleText(a.reader, a.promptWithDefault("Category ("+strings.Join(cats, ", ")+")", string(defaults.Category)), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if cat != "" {
		c := models.Category(strings.ToLower(cat))
		if !c.Valid() {
			// Free text becomes an "other" label rather than an error.
			f.Category = models.CategoryOther
			f.CategoryLabel = cat
		} else {
			f.Category = c
			f.CategoryLabel = ""
		}
	}

	url, err := GetSimpleText(a.reader, a.promptWithDefault("URL", defaults.URL), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if url != "" {
		f.URL = url
	}

	username, err := GetSimpleText(a.reader, a.promptWithDefault("Username", defaults.Username), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if username != "" {
		f.Username = username
	}

	secret, err := GetSimpleText(a.reader, a.promptWithDefault("Secret (empty to keep, 'gen' to generate)", ""), a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	switch secret {
	case "":
		// keep default
	case "gen":
		pw, genErr := a.generatePassword()
		if genErr != nil {
			fmt.Fprintln(a.out, "Error:", genErr)
			return f, false
		}
		f.Secret = pw
	default:
		f.Secret = secret
	}

	notes, err := GetMultiline(a.reader, "Notes", a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if notes != "" {
		f.Notes = notes
	}

	tags, err := GetTags(a.reader, a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Error:", err)
		return f, false
	}
	if tags != nil {
		f.Tags = tags
	}

	return f, true
}

func (a *App) promptWithDefault(label, def string) string {
	if def == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, def)
}

func (a *App) formatCategory(acc models.Account) string {
	if acc.Category == models.CategoryOther && acc.CategoryLabel != "" {
		return fmt.Sprintf("%s (%s)", acc.Category, acc.CategoryLabel)
	}
	return string(acc.Category)
}

func (a *App) parseID(args []string, cmd string) (uuid.UUID, bool) {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		fmt.Fprintln(a.out, "Not a valid record id:", args[0])
		return uuid.Nil, false
	}
	return id, true
}

func (a *App) printFieldsError(err error) {
	switch {
	case errors.Is(err, common.ErrNameRequired):
		fmt.Fprintln(a.out, "Name must not be empty.")
	case errors.Is(err, common.ErrSecretRequired):
		fmt.Fprintln(a.out, "Secret must not be empty.")
	default:
		a.printVaultError(err)
	}
}
