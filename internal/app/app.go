// Package app wires the menu, the line editor and the process runner into
// the interactive program.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"keymap/internal/config"
	"keymap/internal/editor"
	"keymap/internal/keymap"
	"keymap/internal/runner"
	"keymap/internal/system"
	"keymap/internal/terminal"
	"keymap/internal/ui"
)

// ExitError carries the exit code the program should end with.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// ExitCode maps a command's status to a process exit code; a signalled
// child yields 128+signal as shells do.
func ExitCode(s runner.ExitStatus) int {
	if s.Signal != 0 {
		return 128 + int(s.Signal)
	}
	return s.Code
}

// App is the one-key menu. It runs at most one command per Run.
type App struct {
	Term        Terminal
	Keys        terminal.KeySource
	Runner      Runner
	Placeholder string
	Table       keymap.Table
	// Out receives status lines once the terminal has been released.
	Out io.Writer
	Git system.GitInfo
	// Width truncates menu descriptions; 0 disables truncation.
	Width int

	// Changes, when set, signals that Reload should be called before the
	// next key is dispatched.
	Changes <-chan struct{}
	Reload  func() (keymap.Table, error)

	Log *clog.Logger
}

func (a *App) log() *clog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return system.Logger
}

func (a *App) draw() error {
	if err := a.Term.WriteString(ui.ClearScreen() + ui.Menu(a.Git, a.Table, a.Width)); err != nil {
		return err
	}
	return a.Term.Flush()
}

func (a *App) quit() error {
	if err := a.Term.WriteString(ansi.ShowCursor); err != nil {
		return err
	}
	return a.Term.Flush()
}

func (a *App) reloadIfChanged() {
	if a.Changes == nil || a.Reload == nil {
		return
	}
	select {
	case <-a.Changes:
	default:
		return
	}
	t, err := a.Reload()
	if err != nil {
		a.log().Warn("config reload failed, keeping current keymaps", "err", err)
		return
	}
	a.Table = t
	a.log().Debug("keymaps reloaded", "count", len(t))
	if err := a.draw(); err != nil {
		a.log().Warn("redraw failed", "err", err)
	}
}

// Run draws the menu and dispatches keys until the user quits or one
// mapping has run. q, Escape, Ctrl-C and end of input quit.
func (a *App) Run(ctx context.Context) error {
	if err := a.draw(); err != nil {
		return err
	}
	for {
		k, err := a.Keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return a.quit()
		}
		if err != nil {
			_ = a.quit()
			return err
		}
		a.reloadIfChanged()

		switch {
		case k.Type == terminal.KeyEscape, k.Type == terminal.KeyCtrlC,
			k.Type == terminal.KeyRune && k.Rune == keymap.QuitKey:
			return a.quit()
		case k.Type != terminal.KeyRune:
			continue
		}
		km, ok := a.Table.Lookup(k.Rune)
		if !ok {
			continue
		}
		a.log().Debug("selected", "key", string(k.Rune), "command", km.Command)
		return a.runStep(ctx, km)
	}
}

func (a *App) runStep(ctx context.Context, km keymap.Keymap) error {
	p, err := NewStep(a.Term, a.Keys, a.Runner, a.Placeholder).Execute(ctx, km)
	var nu *editor.NonUTF8Error
	var ioe *editor.IOError
	switch {
	case errors.Is(err, editor.ErrEmptyInput), errors.As(err, &nu), errors.As(err, &ioe):
		// already reported by the step
		return &ExitError{Code: 1}
	case errors.Is(err, runner.ErrInterrupted):
		fmt.Fprint(a.out(), "\r\nInterrupted\r\n")
		return &ExitError{Code: 128 + int(syscall.SIGINT)}
	case err != nil:
		return err
	case !p.Ran:
		return nil
	}
	st := p.Outcome.Status
	fmt.Fprint(a.out(), ui.StatusLine(st)+"\r\n")
	if !st.Success() {
		return &ExitError{Code: ExitCode(st)}
	}
	return nil
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// Options configure Start.
type Options struct {
	// ConfigPath overrides the config file location.
	ConfigPath string
}

// Start loads the configuration, takes over the terminal and runs the menu.
func Start(ctx context.Context, opts Options) error {
	path, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	table, err := cfg.Table()
	if err != nil {
		return err
	}
	r, err := NewRunner(cfg)
	if err != nil {
		return err
	}

	tty, err := terminal.Open(terminal.Options{CursorTimeout: cfg.CursorTimeoutDuration()})
	if err != nil {
		return err
	}
	defer tty.Release()

	wd, _ := os.Getwd()
	a := &App{
		Term:        tty,
		Keys:        tty,
		Runner:      r,
		Placeholder: cfg.Placeholder,
		Table:       table,
		Out:         os.Stdout,
		Git:         system.GetGitInfo(ctx, wd),
	}
	if cols, _, err := tty.Size(); err == nil {
		a.Width = cols
	}
	if w, err := config.Watch(path); err != nil {
		system.Logger.Debug("config watch disabled", "err", err)
	} else {
		defer w.Close()
		a.Changes = w.Changes()
		a.Reload = func() (keymap.Table, error) {
			c, err := config.LoadFrom(path)
			if err != nil {
				return nil, err
			}
			return c.Table()
		}
	}
	return a.Run(ctx)
}

// NewRunner builds the process runner described by cfg.
func NewRunner(cfg *config.Config) (*runner.Runner, error) {
	list, err := config.Interactive()
	if err != nil {
		return nil, err
	}
	classifier, err := config.Classifier(list)
	if err != nil {
		return nil, err
	}
	r := runner.New()
	r.Launcher = cfg.RunnerLauncher()
	r.Classifier = classifier
	r.KillGrace = cfg.KillGraceDuration()
	return r, nil
}

// RunMapping runs km without the menu, substituting input when the mapping
// has a prompt. The input is trimmed the same way the line editor trims a
// typed answer; a blank answer is editor.ErrEmptyInput and nothing runs.
func RunMapping(ctx context.Context, r Runner, km keymap.Keymap, input, placeholder string) (runner.Outcome, error) {
	command := km.Command
	if km.HasPrompt() {
		input = strings.TrimSpace(input)
		if input == "" {
			return runner.Outcome{}, editor.ErrEmptyInput
		}
		command = runner.Substitute(km.Command, placeholder, input)
	}
	return r.Run(ctx, command)
}
