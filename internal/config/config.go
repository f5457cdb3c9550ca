// Package config loads and saves the keymap configuration: the launcher,
// timing knobs and the key table.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"keymap/internal/keymap"
	"keymap/internal/runner"
	"keymap/internal/store"
	"keymap/internal/terminal"
)

// Config is the content of config.yaml.
type Config struct {
	Launcher      LauncherConfig `yaml:"launcher" json:"launcher" jsonschema_description:"Program that wraps every command; the command string is passed between args and trailer."`
	Placeholder   string         `yaml:"placeholder" json:"placeholder" jsonschema_description:"Token in a command template replaced by the user's input."`
	CursorTimeout string         `yaml:"cursor_timeout" json:"cursor_timeout" jsonschema_description:"How long to wait for the terminal to report the cursor position (Go duration). 0 waits forever."`
	KillGrace     string         `yaml:"kill_grace" json:"kill_grace" jsonschema_description:"Time between SIGTERM and SIGKILL when a running command is interrupted (Go duration)."`
	Keymaps       []KeymapEntry  `yaml:"keymaps" json:"keymaps" jsonschema_description:"Menu entries in display order."`
}

// LauncherConfig mirrors runner.Launcher.
type LauncherConfig struct {
	Path    string   `yaml:"path" json:"path"`
	Args    []string `yaml:"args,omitempty" json:"args,omitempty"`
	Trailer []string `yaml:"trailer,omitempty" json:"trailer,omitempty"`
}

// KeymapEntry is one menu entry as written in the file.
type KeymapEntry struct {
	Key         string `yaml:"key" json:"key" jsonschema:"minLength=1,maxLength=1"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Command     string `yaml:"command" json:"command"`
	Prompt      string `yaml:"prompt,omitempty" json:"prompt,omitempty" jsonschema_description:"When set the user is asked for one line of input."`
}

// Default returns the built-in configuration.
func Default() *Config {
	l := runner.ScriptLauncher()
	return &Config{
		Launcher:      LauncherConfig{Path: l.Path, Args: l.Args, Trailer: l.Trailer},
		Placeholder:   runner.DefaultPlaceholder,
		CursorTimeout: terminal.DefaultCursorTimeout.String(),
		KillGrace:     runner.DefaultKillGrace.String(),
		Keymaps:       Entries(keymap.Defaults()),
	}
}

// Load reads config.yaml from the config directory.
func Load() (*Config, error) {
	p, err := ConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(p)
}

// LoadFrom reads the config at path over the defaults. A missing file yields
// the defaults; a keymaps list in the file replaces the default table.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks durations, the launcher and the key table.
func (c *Config) Validate() error {
	var errs []error
	if c.Launcher.Path == "" {
		errs = append(errs, errors.New("launcher.path is empty"))
	}
	if _, err := parseDuration(c.CursorTimeout); err != nil {
		errs = append(errs, fmt.Errorf("cursor_timeout: %w", err))
	}
	if _, err := parseDuration(c.KillGrace); err != nil {
		errs = append(errs, fmt.Errorf("kill_grace: %w", err))
	}
	if _, err := c.Table(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Table converts the entries to a validated keymap table.
func (c *Config) Table() (keymap.Table, error) {
	t := make(keymap.Table, 0, len(c.Keymaps))
	for i, e := range c.Keymaps {
		k, err := e.Keymap()
		if err != nil {
			return nil, fmt.Errorf("keymaps[%d]: %w", i, err)
		}
		t = append(t, k)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Keymap converts the entry.
func (e KeymapEntry) Keymap() (keymap.Keymap, error) {
	if utf8.RuneCountInString(e.Key) != 1 {
		return keymap.Keymap{}, fmt.Errorf("key %q must be a single character", e.Key)
	}
	r, _ := utf8.DecodeRuneInString(e.Key)
	k := keymap.New(r, e.Command).WithPrompt(e.Prompt)
	if e.Description != "" {
		k = k.WithDescription(e.Description)
	}
	return k, nil
}

// Entries converts a table back to file entries.
func Entries(t keymap.Table) []KeymapEntry {
	out := make([]KeymapEntry, 0, len(t))
	for _, k := range t {
		e := KeymapEntry{Key: string(k.Key), Command: k.Command, Prompt: k.Prompt}
		if k.Description != k.Command {
			e.Description = k.Description
		}
		out = append(out, e)
	}
	return out
}

// RunnerLauncher returns the configured launcher.
func (c *Config) RunnerLauncher() runner.Launcher {
	return runner.Launcher{Path: c.Launcher.Path, Args: c.Launcher.Args, Trailer: c.Launcher.Trailer}
}

// CursorTimeoutDuration returns the cursor query timeout; invalid values
// fall back to the default.
func (c *Config) CursorTimeoutDuration() time.Duration {
	d, err := parseDuration(c.CursorTimeout)
	if err != nil {
		return terminal.DefaultCursorTimeout
	}
	return d
}

// KillGraceDuration returns the SIGTERM to SIGKILL delay.
func (c *Config) KillGraceDuration() time.Duration {
	d, err := parseDuration(c.KillGrace)
	if err != nil || d <= 0 {
		return runner.DefaultKillGrace
	}
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

// Interactive returns the interactive prefix list store, seeded with the
// runner's defaults.
func Interactive() (store.StringList, error) {
	p, err := InteractivePath()
	if err != nil {
		return store.StringList{}, err
	}
	return store.StringList{Path: p, Defaults: runner.DefaultPrefixes()}, nil
}

// Classifier builds the runner classifier from the interactive list plus the
// user's editor and pager.
func Classifier(list store.StringList) (*runner.Classifier, error) {
	prefixes, err := list.Load()
	if err != nil {
		return nil, err
	}
	return runner.NewClassifier(prefixes...).WithEnvEditors(), nil
}
