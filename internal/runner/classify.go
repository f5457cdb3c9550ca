package runner

import (
	"os"
	"path/filepath"
	"strings"

	"keymap/internal/store"
)

// Class says how a command is executed.
type Class int

const (
	// Capturing commands have stdout and stderr piped, teed and collected.
	Capturing Class = iota
	// Interactive commands take over the terminal.
	Interactive
)

func (c Class) String() string {
	if c == Interactive {
		return "interactive"
	}
	return "capturing"
}

// DefaultPrefixes lists programs known to need the terminal.
func DefaultPrefixes() []string {
	return []string{
		// editors
		"vim", "nvim", "vi", "nano", "hx", "emacs",
		// pagers
		"less", "more", "man",
		// fuzzy finders
		"fzf", "sk",
		// visual diff and git front ends
		"vimdiff", "git difftool", "tig", "lazygit",
		"git add -p", "git rebase -i",
		"htop", "top", "ssh",
	}
}

// Classifier decides the Class of a command string from a prefix list. A
// prefix matches when the command equals it or continues with a space, so
// "vi" matches "vi notes.txt" but not "view".
//
// Commands that need the terminal but are not listed are run as Capturing
// and will misbehave; extend the list rather than guessing.
type Classifier struct {
	prefixes []string
}

// NewClassifier builds a classifier over prefixes. Whitespace inside a prefix
// is collapsed; empty and duplicate entries are dropped.
func NewClassifier(prefixes ...string) *Classifier {
	norm := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		norm = append(norm, collapse(p))
	}
	return &Classifier{prefixes: store.NormalizeStrings(norm)}
}

// DefaultClassifier classifies with DefaultPrefixes.
func DefaultClassifier() *Classifier { return NewClassifier(DefaultPrefixes()...) }

// WithEnvEditors returns a classifier that also treats the programs named by
// $EDITOR, $VISUAL and $PAGER as interactive.
func (c *Classifier) WithEnvEditors() *Classifier {
	all := append([]string{}, c.prefixes...)
	for _, key := range []string{"EDITOR", "VISUAL", "PAGER"} {
		fields := strings.Fields(os.Getenv(key))
		if len(fields) == 0 {
			continue
		}
		all = append(all, filepath.Base(fields[0]))
	}
	return NewClassifier(all...)
}

// Prefixes returns the normalized prefix list.
func (c *Classifier) Prefixes() []string { return append([]string{}, c.prefixes...) }

// Classify is pure: the same command always yields the same Class.
func (c *Classifier) Classify(command string) Class {
	cmd := collapse(command)
	for _, p := range c.prefixes {
		if cmd == p || strings.HasPrefix(cmd, p+" ") {
			return Interactive
		}
	}
	return Capturing
}

func collapse(s string) string { return strings.Join(strings.Fields(s), " ") }
