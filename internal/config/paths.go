package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DirEnv overrides the config directory.
const DirEnv = "KEYMAP_CONFIG_DIR"

// Dir returns the keymap config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/keymap; on macOS
// to ~/Library/Application Support/keymap. Falls back to HOME when
// UserConfigDir is unavailable.
func Dir() (string, error) {
	if d := strings.TrimSpace(os.Getenv(DirEnv)); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config directory")
		}
		base = home
	}
	return filepath.Join(base, "keymap"), nil
}

// ConfigPath returns the path of config.yaml.
func ConfigPath() (string, error) { return inDir("config.yaml") }

// Resolve returns override when set, else ConfigPath.
func Resolve(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return ConfigPath()
}

// InteractivePath returns the path of the interactive prefix list.
func InteractivePath() (string, error) { return inDir("interactive.json") }

func inDir(name string) (string, error) {
	d, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, name), nil
}
