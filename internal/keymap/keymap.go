// Package keymap defines the menu's key-to-command mappings.
package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// QuitKey always quits the menu and cannot be mapped.
const QuitKey = 'q'

// Keymap binds a trigger key to a shell command template. When Prompt is
// set, the user is asked for one line of input which replaces the
// placeholder in Command.
type Keymap struct {
	Key         rune
	Description string
	Command     string
	Prompt      string
}

// New returns a mapping whose description defaults to the command.
func New(key rune, command string) Keymap {
	return Keymap{Key: key, Command: command, Description: command}
}

// WithPrompt returns a copy of k that asks for input with prompt.
func (k Keymap) WithPrompt(prompt string) Keymap {
	k.Prompt = prompt
	return k
}

// WithDescription returns a copy of k with a menu description.
func (k Keymap) WithDescription(description string) Keymap {
	k.Description = description
	return k
}

// HasPrompt reports whether the mapping collects input.
func (k Keymap) HasPrompt() bool { return k.Prompt != "" }

// MenuLine is how the mapping is listed in the menu.
func (k Keymap) MenuLine() string { return fmt.Sprintf("%c  %s", k.Key, k.Description) }

// Table is an ordered list of mappings.
type Table []Keymap

var (
	ErrEmptyCommand = errors.New("empty command")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrReservedKey  = errors.New("reserved key")
	ErrNotFound     = errors.New("no mapping for key")
)

// Lookup returns the first mapping for key.
func (t Table) Lookup(key rune) (Keymap, bool) {
	for _, k := range t {
		if k.Key == key {
			return k, true
		}
	}
	return Keymap{}, false
}

// Keys returns the trigger keys in table order.
func (t Table) Keys() []rune {
	out := make([]rune, len(t))
	for i, k := range t {
		out[i] = k.Key
	}
	return out
}

// Validate rejects empty commands, duplicate keys and the quit key.
func (t Table) Validate() error {
	seen := map[rune]bool{}
	var errs []error
	for _, k := range t {
		switch {
		case k.Key == QuitKey:
			errs = append(errs, fmt.Errorf("%w: %q quits the menu", ErrReservedKey, k.Key))
		case k.Key < 0x21 || k.Key > 0x7e:
			errs = append(errs, fmt.Errorf("key %q: must be a printable ASCII character", k.Key))
		case seen[k.Key]:
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateKey, k.Key))
		}
		seen[k.Key] = true
		if strings.TrimSpace(k.Command) == "" {
			errs = append(errs, fmt.Errorf("key %q: %w", k.Key, ErrEmptyCommand))
		}
	}
	return errors.Join(errs...)
}

// With returns a copy of t with k added, replacing any mapping for k.Key in
// place.
func (t Table) With(k Keymap) Table {
	out := make(Table, 0, len(t)+1)
	replaced := false
	for _, cur := range t {
		if cur.Key == k.Key {
			if !replaced {
				out = append(out, k)
				replaced = true
			}
			continue
		}
		out = append(out, cur)
	}
	if !replaced {
		out = append(out, k)
	}
	return out
}

// Without returns a copy of t without mappings for key.
func (t Table) Without(key rune) (Table, error) {
	out := make(Table, 0, len(t))
	for _, cur := range t {
		if cur.Key != key {
			out = append(out, cur)
		}
	}
	if len(out) == len(t) {
		return t, fmt.Errorf("%w %q", ErrNotFound, key)
	}
	return out, nil
}

// Defaults is the commit-message table the program ships with.
func Defaults() Table {
	const prompt = "Enter commit message:"
	return Table{
		New('f', "git add . && git commit -m 'Feat: {}'").
			WithDescription("Feat: adds a new feature to the product").
			WithPrompt(prompt),
		New('x', "git add . && git commit -m 'Fix: {}'").
			WithDescription("Fix: fixes a defect in a feature").
			WithPrompt(prompt),
		New('r', "git add . && git commit -m 'Refac: {}'").
			WithDescription("Refac: changes a feature's code but not its behavior").
			WithPrompt(prompt),
		New('c', "git add . && git commit -m 'Chore: {}'").
			WithDescription("Chore: changes that are not related any feature").
			WithPrompt(prompt),
		New('s', "git status").
			WithDescription("Status: show the working tree status"),
	}
}
