package tools

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"keymap/internal/runner"
)

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in   string
		want Version
		ok   bool
	}{
		{"git version 2.43.0\n", Version{2, 43, 0, "", "2.43.0"}, true},
		{"git version 2.43.0.windows.1", Version{2, 43, 0, "", "2.43.0.windows.1"}, true},
		{"script from util-linux 2.39.3", Version{2, 39, 3, "", "2.39.3"}, true},
		{"script (util-linux) 2.40", Version{2, 40, 0, "", "2.40"}, true},
		{"NVIM v0.10.1\nBuild type: Release", Version{0, 10, 1, "", "0.10.1"}, true},
		{"GNU bash, version 5.2.21(1)-release (x86_64-pc-linux-gnu)", Version{5, 2, 21, "", "5.2.21"}, true},
		{"lazygit: commit=7a1b, build date=2024.03.01, version=0.44.1-rc1", Version{0, 44, 1, "rc1", "0.44.1-rc1"}, true},
		{"Usage: tig [options]\ntig version 2.5", Version{2, 5, 0, "", "2.5"}, true},
		{"no numbers here", Version{}, false},
		{"", Version{}, false},
	}
	for _, c := range cases {
		got, ok := ParseVersion(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseVersion(%q) = %+v %v, want %+v", c.in, got, ok, c.want)
		}
	}
}

func TestVersionString(t *testing.T) {
	if s := (Version{Major: 1, Minor: 2, Pre: "rc1"}).String(); s != "1.2.0-rc1" {
		t.Fatalf("got %q", s)
	}
	if s := (Version{Major: 2, Raw: "2.0.windows.1"}).String(); s != "2.0.windows.1" {
		t.Fatalf("got %q", s)
	}
}

func TestVersionLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"1.9.0", "2.0.0", true},
		{"v2.0.0", "2.0.0", false},
		{"2.10", "2.9.9", false},
		{"2.0.0-rc1", "2.0.0", true},
		{"2.0.0", "2.0.0-rc1", false},
		{"2.43.0.windows.1", "2.43.0", false},
		{"2.39.3", "2.40", true},
		{"", "1.0.0", false},
		{"1.0.0", "latest", false},
	}
	for _, c := range cases {
		if got := VersionLess(c.a, c.b); got != c.want {
			t.Fatalf("VersionLess(%q, %q) = %v", c.a, c.b, got)
		}
	}
}

func TestBannerKeepsOutputOfFailingCommand(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not in PATH")
	}
	out, err := banner(context.Background(), sh, "-c", "echo sh 0.5.12; exit 2")
	if err != nil || out != "sh 0.5.12\n" {
		t.Fatalf("got %q %v", out, err)
	}
	out, err = banner(context.Background(), sh, "-c", "echo $LC_ALL")
	if err != nil || out != "C\n" {
		t.Fatalf("locale %q %v", out, err)
	}
	if _, err := banner(context.Background(), "/keymap-no-such-binary"); err == nil {
		t.Fatal("missing binary accepted")
	}
}

func TestRegistryDedupesPrefixes(t *testing.T) {
	tools := Registry(runner.ShellLauncher(), []string{"vim", "git add -p", "git rebase -i", "vim", "htop"})
	var names []string
	for _, tl := range tools {
		names = append(names, tl.Name)
	}
	want := []string{"sh", "git", "vim", "htop"}
	if len(names) != len(want) {
		t.Fatalf("names %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names %v, want %v", names, want)
		}
	}
	if !tools[0].Required || tools[1].Required {
		t.Fatalf("only the launcher is required: %+v", tools[:2])
	}
}

func TestCheckTool(t *testing.T) {
	ctx := context.Background()
	res := CheckTool(ctx, ToolInfo{Name: "sh", Binaries: []string{"sh"}, Required: true})
	if !res.Installed || res.Path == "" || !res.OK() {
		t.Fatalf("sh not found: %+v", res)
	}
	res = CheckTool(ctx, ToolInfo{Name: "nope", Binaries: []string{"keymap-no-such-binary"}, Required: true})
	if res.Installed || res.OK() || res.Err == "" {
		t.Fatalf("missing tool reported installed: %+v", res)
	}
	if !(CheckResult{Tool: ToolInfo{Name: "optional"}}).OK() {
		t.Fatal("missing optional tool should not fail")
	}
}

func TestCheckToolFlagsOutdated(t *testing.T) {
	res := CheckTool(context.Background(), ToolInfo{
		Name:        "script",
		Binaries:    []string{"sh"},
		VersionArgs: [][]string{{"-c", "exit 1"}, {"-c", "echo script from util-linux 2.39.3; exit 1"}},
		MinVersion:  "2.40",
		Required:    true,
	})
	if !res.Installed || res.Version != "2.39.3" || !res.Outdated || res.OK() {
		t.Fatalf("got %+v", res)
	}
	if !strings.HasSuffix(res.Source, "exit 1") || !strings.Contains(res.Source, "util-linux") {
		t.Fatalf("source %q", res.Source)
	}
}

func TestCheckAllKeepsOrder(t *testing.T) {
	tools := []ToolInfo{
		{Name: "a", Binaries: []string{"keymap-no-such-binary"}},
		{Name: "sh", Binaries: []string{"sh"}},
	}
	res := CheckAll(context.Background(), tools)
	if len(res) != 2 || res[0].Tool.Name != "a" || res[1].Tool.Name != "sh" || !res[1].Installed {
		t.Fatalf("results %+v", res)
	}
}
