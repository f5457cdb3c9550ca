package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/x/ansi"

	"keymap/internal/editor"
	"keymap/internal/keymap"
	"keymap/internal/runner"
	"keymap/internal/terminal"
	"keymap/internal/ui"
)

// Terminal is the port a step draws on. Release hands the terminal back
// (cooked mode) before a command runs; it must be safe to call twice.
type Terminal interface {
	terminal.Port
	Release() error
}

// Runner executes a finished command string.
type Runner interface {
	Run(ctx context.Context, command string) (runner.Outcome, error)
}

// ErrReleased is returned when a step is used after it gave the terminal
// away.
var ErrReleased = errors.New("terminal already released")

// Process is what a step did. Ran is false when no command was started.
type Process struct {
	Ran     bool
	Outcome runner.Outcome
}

// Step collects input for one mapping and runs it. It owns the terminal
// until the command starts.
type Step struct {
	term        Terminal
	keys        terminal.KeySource
	runner      Runner
	placeholder string
}

// NewStep returns a step drawing on term and reading keys.
func NewStep(term Terminal, keys terminal.KeySource, r Runner, placeholder string) *Step {
	if placeholder == "" {
		placeholder = runner.DefaultPlaceholder
	}
	return &Step{term: term, keys: keys, runner: r, placeholder: placeholder}
}

// Execute prompts for km, if needed, and processes the answer.
func (s *Step) Execute(ctx context.Context, km keymap.Keymap) (Process, error) {
	res, err := s.Input(km.Prompt)
	return s.Process(ctx, res, err, km)
}

// Input shows prompt and runs one editing session. An empty prompt asks
// nothing and yields a None result.
func (s *Step) Input(prompt string) (editor.Result, error) {
	if prompt == "" {
		return editor.Result{Kind: editor.None}, nil
	}
	if s.term == nil {
		return editor.Result{}, ErrReleased
	}
	if err := s.term.WriteString(prompt + "\r\n"); err != nil {
		return editor.Result{}, &editor.IOError{Op: "write", Err: err}
	}
	if err := s.showCursor(); err != nil {
		return editor.Result{}, &editor.IOError{Op: "flush", Err: err}
	}
	return editor.ReadLine(s.term, s.keys)
}

// Process acts on an editing outcome: Text and None run the command, Cancel
// and errors do not. Errors are reported on the terminal and returned.
func (s *Step) Process(ctx context.Context, res editor.Result, inputErr error, km keymap.Keymap) (Process, error) {
	if s.term == nil {
		return Process{}, ErrReleased
	}
	if inputErr != nil {
		_ = s.term.WriteString("\r\n" + ui.InvalidInput(inputErr) + "\r\n")
		_ = s.showCursor()
		return Process{}, inputErr
	}

	command := km.Command
	switch res.Kind {
	case editor.Cancel:
		_ = s.term.WriteString("\r\n")
		return Process{}, s.showCursor()
	case editor.Text:
		// the cursor is still on the input line
		if err := s.term.WriteString("\r\n"); err != nil {
			return Process{}, err
		}
		command = runner.Substitute(km.Command, s.placeholder, res.Text)
	}

	if err := s.showCursor(); err != nil {
		return Process{}, err
	}
	if err := s.release(); err != nil {
		return Process{}, err
	}
	out, err := s.runner.Run(ctx, command)
	return Process{Ran: true, Outcome: out}, err
}

func (s *Step) showCursor() error {
	if err := s.term.WriteString(ansi.ShowCursor); err != nil {
		return err
	}
	return s.term.Flush()
}

// release hands the terminal back and drops the step's reference so
// nothing draws on it while the command runs.
func (s *Step) release() error {
	t := s.term
	s.term = nil
	return t.Release()
}
