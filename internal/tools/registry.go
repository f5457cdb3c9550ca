package tools

import (
	"path/filepath"
	"strings"

	"keymap/internal/runner"
)

var defaultVersionArgs = [][]string{{"--version"}, {"-V"}, {"version"}}

// Registry lists the tools keymap depends on: the launcher every command
// goes through, git for the menu header and the default keymaps, and the
// programs named by the interactive prefixes.
func Registry(l runner.Launcher, prefixes []string) []ToolInfo {
	tools := []ToolInfo{
		{
			Name:        filepath.Base(l.Path),
			Purpose:     "launcher",
			Binaries:    []string{l.Path},
			VersionArgs: [][]string{{"--version"}, {"-V"}},
			Required:    true,
		},
		{
			Name:        "git",
			Purpose:     "menu header, default keymaps",
			Binaries:    []string{"git"},
			VersionArgs: [][]string{{"--version"}},
			MinVersion:  "2.0.0",
		},
	}
	seen := map[string]bool{}
	for _, t := range tools {
		seen[t.Name] = true
	}
	for _, p := range prefixes {
		f := strings.Fields(p)
		if len(f) == 0 || seen[f[0]] {
			continue
		}
		seen[f[0]] = true
		tools = append(tools, ToolInfo{
			Name:        f[0],
			Purpose:     "interactive",
			Binaries:    []string{f[0]},
			VersionArgs: defaultVersionArgs,
		})
	}
	return tools
}
