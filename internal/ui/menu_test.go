package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"keymap/internal/keymap"
	"keymap/internal/runner"
	"keymap/internal/system"
	"keymap/internal/tools"
)

func TestMenu(t *testing.T) {
	tbl := keymap.Table{keymap.New('t', "echo 'test'").WithDescription("Test keymap")}
	out := ansi.Strip(Menu(system.GitInfo{}, tbl, 80))
	want := "Please select a command:\r\nt  Test keymap\r\n"
	if out != want {
		t.Fatalf("menu %q, want %q", out, want)
	}
}

func TestHeaderShowsBranch(t *testing.T) {
	h := ansi.Strip(Header(system.GitInfo{InRepo: true, Branch: "main", ShortSHA: "abc1234", Dirty: true}))
	if !strings.HasPrefix(h, MenuTitle) || !strings.Contains(h, "main@abc1234*") {
		t.Fatalf("header %q", h)
	}
}

func TestMenuLineTruncates(t *testing.T) {
	k := keymap.New('x', strings.Repeat("long ", 20))
	line := ansi.Strip(MenuLine(k, 20))
	if ansi.StringWidth(line) > 20 || !strings.HasSuffix(line, "…") {
		t.Fatalf("line %q", line)
	}
}

func TestStatusLine(t *testing.T) {
	cases := []struct {
		st   runner.ExitStatus
		want string
	}{
		{runner.ExitStatus{}, "Command executed successfully"},
		{runner.ExitStatus{Code: 2}, "Command failed with exit code 2"},
		{runner.ExitStatus{Code: -1, Signal: 15}, "Command failed with exit code -1"},
	}
	for _, tc := range cases {
		if got := ansi.Strip(StatusLine(tc.st)); got != tc.want {
			t.Errorf("StatusLine(%+v) = %q, want %q", tc.st, got, tc.want)
		}
	}
}

func TestKeymapMarkdown(t *testing.T) {
	md := KeymapMarkdown(keymap.Table{keymap.New('p', "a | b").WithPrompt("Say:")})
	if !strings.Contains(md, "| `p` | a \\| b | `a \\| b` | Say: |") {
		t.Fatalf("markdown:\n%s", md)
	}
	out, err := RenderMarkdown(KeymapMarkdown(keymap.Defaults()), 200)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	plain := ansi.Strip(out)
	for _, want := range []string{"Key", "Description", "Feat"} {
		if !strings.Contains(plain, want) {
			t.Errorf("rendered table lacks %q:\n%s", want, plain)
		}
	}
}

func TestTableFitsWidth(t *testing.T) {
	rows := [][]string{
		{"git", "menu header", "2.43.0  /usr/bin/git"},
		{"lazygit", "interactive", "not found in PATH"},
	}
	lines := Table(30, []string{"Tool", "Used for", "Status"}, rows)
	if len(lines) != 3 {
		t.Fatalf("lines %q", lines)
	}
	for _, l := range lines {
		if w := ansi.StringWidth(l); w > 30 {
			t.Fatalf("line %q is %d cells wide", ansi.Strip(l), w)
		}
	}
	if !strings.HasPrefix(ansi.Strip(lines[2]), "lazygit  interactive") {
		t.Fatalf("row %q", ansi.Strip(lines[2]))
	}

	wide := Table(0, []string{"A", "B"}, [][]string{{"x", "yyy"}})
	if got := ansi.Strip(wide[1]); got != "x  yyy" {
		t.Fatalf("unbounded row %q", got)
	}
}

func TestDoctorTable(t *testing.T) {
	t.Setenv("NERDFONT", "0")
	out := ansi.Strip(DoctorTable([]tools.CheckResult{
		{Tool: tools.ToolInfo{Name: "sh", Purpose: "launcher", Required: true}, Installed: true, Path: "/bin/sh"},
		{Tool: tools.ToolInfo{Name: "script", Purpose: "launcher", Required: true}, Err: "not found in PATH"},
	}, 0))
	for _, want := range []string{"✓ sh", "/bin/sh", "✗ script", "not found in PATH"} {
		if !strings.Contains(out, want) {
			t.Fatalf("doctor table lacks %q:\n%s", want, out)
		}
	}
}
