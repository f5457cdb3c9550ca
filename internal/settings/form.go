// Package settings holds the interactive forms used to edit the
// configuration.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"keymap/internal/keymap"
)

func theme() *huh.Theme {
	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	t := huh.ThemeCharm()
	t.FieldSeparator = lipgloss.NewStyle()
	t.Blurred.Title = t.Blurred.Title.Width(14).Foreground(lipgloss.Color("7"))
	t.Focused.Title = t.Focused.Title.Width(14).Foreground(green).Bold(true)
	t.Blurred.Description = t.Blurred.Description.Foreground(lipgloss.Color("243"))
	t.Focused.Base = t.Focused.Base.BorderForeground(green)
	return t
}

// ValidateKey checks a trigger key typed into the form against the
// mappings already in use.
func ValidateKey(s string, existing keymap.Table) error {
	if len(s) != 1 {
		return errors.New("enter exactly one character")
	}
	k := rune(s[0])
	candidate := append(keymap.Table{}, existing...)
	candidate = append(candidate, keymap.New(k, "placeholder"))
	return candidate.Validate()
}

// KeymapForm asks for the fields of a new mapping. Fields already set in
// seed are shown as defaults. The returned mapping has been validated
// against existing.
func KeymapForm(seed keymap.Keymap, existing keymap.Table) (keymap.Keymap, error) {
	key := ""
	if seed.Key != 0 {
		key = string(seed.Key)
	}
	desc, command, prompt := seed.Description, seed.Command, seed.Prompt

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New keymap").Description("One key, one shell command. Use {} in the command where the prompt answer goes."),
			huh.NewInput().
				Title("Key").
				CharLimit(1).
				Validate(func(s string) error { return ValidateKey(s, existing) }).
				Value(&key),
			huh.NewInput().
				Title("Command").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return keymap.ErrEmptyCommand
					}
					return nil
				}).
				Value(&command),
			huh.NewInput().
				Title("Description").
				Description("Shown in the menu; defaults to the command.").
				Value(&desc),
			huh.NewInput().
				Title("Prompt").
				Description("Leave empty to run without asking.").
				Value(&prompt),
		),
	).WithTheme(theme()).WithWidth(72)

	if err := form.Run(); err != nil {
		return keymap.Keymap{}, err
	}

	if err := ValidateKey(key, existing); err != nil {
		return keymap.Keymap{}, fmt.Errorf("key %q: %w", key, err)
	}
	km := keymap.New(rune(key[0]), strings.TrimSpace(command)).WithPrompt(strings.TrimSpace(prompt))
	if d := strings.TrimSpace(desc); d != "" {
		km = km.WithDescription(d)
	}
	return km, nil
}
