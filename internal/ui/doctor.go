package ui

import (
	"strings"

	"keymap/internal/tools"
)

// DoctorTable renders doctor results, one row per tool.
func DoctorTable(results []tools.CheckResult, width int) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{doctorIcon(r) + " " + r.Tool.Name, r.Tool.Purpose, doctorDetail(r)})
	}
	return strings.Join(Table(width, []string{"Tool", "Used for", "Status"}, rows), "\n")
}

func doctorIcon(r tools.CheckResult) string {
	switch {
	case r.Installed && !r.Outdated:
		return AccentBold().Render(IconOK())
	case !r.OK():
		return ErrorStyle().Render(IconFail())
	case r.Installed:
		return KeyStyle().Render(IconWarn())
	}
	return MutedStyle().Render(IconSkip())
}

func doctorDetail(r tools.CheckResult) string {
	switch {
	case !r.Installed:
		return r.Err
	case r.Outdated:
		return r.Err
	case r.Version != "":
		return r.Version + "  " + r.Path
	}
	return r.Path
}
