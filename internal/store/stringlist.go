// Package store persists small JSON string lists, such as the interactive
// command prefixes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizeStrings trims, deduplicates and sorts a slice of strings.
func NormalizeStrings(in []string) []string {
	m := map[string]struct{}{}
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		m[s] = struct{}{}
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StringList is a JSON array of strings stored at Path. Until the file
// exists, Load returns Defaults.
type StringList struct {
	Path     string
	Defaults []string
}

// Load reads the list. Output is normalized.
func (l StringList) Load() ([]string, error) {
	b, err := os.ReadFile(l.Path)
	if errors.Is(err, os.ErrNotExist) {
		return NormalizeStrings(l.Defaults), nil
	}
	if err != nil {
		return nil, err
	}
	var arr []string
	if err := json.Unmarshal(b, &arr); err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.Path, err)
	}
	return NormalizeStrings(arr), nil
}

// Exists reports whether the list has been written.
func (l StringList) Exists() bool {
	_, err := os.Stat(l.Path)
	return err == nil
}

// Save writes list, normalized, creating parent directories.
func (l StringList) Save(list []string) error {
	if strings.TrimSpace(l.Path) == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(l.Path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(NormalizeStrings(list), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.Path, append(b, '\n'), 0o644)
}

// Add merges items into the list and saves it. It reports which items were
// new and which were already present.
func (l StringList) Add(items []string) (added, existed []string, err error) {
	cur, err := l.Load()
	if err != nil {
		return nil, nil, err
	}
	set := toSet(cur)
	for _, s := range NormalizeStrings(items) {
		if set[s] {
			existed = append(existed, s)
			continue
		}
		set[s] = true
		added = append(added, s)
	}
	if err := l.Save(fromSet(set)); err != nil {
		return nil, nil, err
	}
	return added, existed, nil
}

// Remove drops items from the list and saves it. It reports which items were
// removed and which were not present.
func (l StringList) Remove(items []string) (removed, missing []string, err error) {
	cur, err := l.Load()
	if err != nil {
		return nil, nil, err
	}
	set := toSet(cur)
	for _, s := range NormalizeStrings(items) {
		if !set[s] {
			missing = append(missing, s)
			continue
		}
		delete(set, s)
		removed = append(removed, s)
	}
	if err := l.Save(fromSet(set)); err != nil {
		return nil, nil, err
	}
	return removed, missing, nil
}

func toSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, s := range list {
		set[s] = true
	}
	return set
}

func fromSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}
