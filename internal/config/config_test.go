package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"keymap/internal/keymap"
	"keymap/internal/runner"
	tu "keymap/internal/testutil"
)

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	tbl, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(tbl) != len(keymap.Defaults()) {
		t.Fatalf("table has %d entries", len(tbl))
	}
	if got := cfg.RunnerLauncher().Argv("x"); strings.Join(got, " ") != "script -qec x /dev/null" {
		t.Fatalf("launcher argv %v", got)
	}
	if cfg.CursorTimeoutDuration() != 2*time.Second || cfg.KillGraceDuration() != runner.DefaultKillGrace {
		t.Fatalf("durations %v %v", cfg.CursorTimeoutDuration(), cfg.KillGraceDuration())
	}
}

func TestLoadFromOverrides(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := `
launcher:
  path: /bin/sh
  args: ["-c"]
  trailer: []
placeholder: "%s"
cursor_timeout: 0s
keymaps:
  - key: t
    description: Test keymap
    command: echo %s
    prompt: Test prompt
  - key: l
    command: ls -la
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(p)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Placeholder != "%s" || cfg.CursorTimeoutDuration() != 0 {
		t.Fatalf("got %+v", cfg)
	}
	if cfg.KillGrace != runner.DefaultKillGrace.String() {
		t.Fatalf("kill grace not defaulted: %q", cfg.KillGrace)
	}
	tbl, err := cfg.Table()
	if err != nil {
		t.Fatalf("Table: %v", err)
	}
	if len(tbl) != 2 {
		t.Fatalf("table %+v", tbl)
	}
	k, ok := tbl.Lookup('t')
	if !ok || k.Prompt != "Test prompt" || k.Description != "Test keymap" {
		t.Fatalf("t entry %+v", k)
	}
	if k, _ := tbl.Lookup('l'); k.Description != "ls -la" {
		t.Fatalf("description should default to the command: %+v", k)
	}
	if argv := cfg.RunnerLauncher().Argv("ls"); len(argv) != 3 || argv[0] != "/bin/sh" {
		t.Fatalf("argv %v", argv)
	}
}

func TestLoadFromErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"parse":      "keymaps: [",
		"duration":   "cursor_timeout: soon",
		"key length": "keymaps:\n  - key: ab\n    command: x\n",
		"reserved":   "keymaps:\n  - key: q\n    command: x\n",
		"no command": "keymaps:\n  - key: a\n",
	}
	for name, data := range cases {
		p := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".yaml")
		if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(p); err == nil {
			t.Errorf("%s: expected error", name)
		} else if !strings.Contains(err.Error(), p) {
			t.Errorf("%s: error does not name the file: %v", name, err)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Keymaps = Entries(keymap.Table{keymap.New('z', "echo {}").WithPrompt("Say:")})
	if err := Save(p, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFrom(p)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	tbl, _ := got.Table()
	if len(tbl) != 1 || tbl[0].Key != 'z' || tbl[0].Prompt != "Say:" || tbl[0].Description != "echo {}" {
		t.Fatalf("table %+v", tbl)
	}
}

func TestDirOverride(t *testing.T) {
	dir := t.TempDir()
	tu.WithEnv(t, DirEnv, dir)
	p, err := ConfigPath()
	if err != nil || p != filepath.Join(dir, "config.yaml") {
		t.Fatalf("ConfigPath %q %v", p, err)
	}
	list, err := Interactive()
	if err != nil || list.Path != filepath.Join(dir, "interactive.json") {
		t.Fatalf("Interactive %+v %v", list, err)
	}
	c, err := Classifier(list)
	if err != nil {
		t.Fatalf("Classifier: %v", err)
	}
	if c.Classify("vim x") != runner.Interactive {
		t.Fatal("defaults not applied to a missing list")
	}
}

func TestSchema(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("MarshalSchema: %v", err)
	}
	for _, want := range []string{`"keymaps"`, `"cursor_timeout"`, `"launcher"`, "keymap configuration"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("schema lacks %s", want)
		}
	}
}

func TestWatchSignalsChanges(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	w, err := Watch(p)
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(filepath.Dir(p), "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("placeholder: '{}'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}
