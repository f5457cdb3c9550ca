// Package runner executes shell commands through a pty-wrapping launcher,
// either handing them the terminal or capturing both output streams while
// echoing them live.
package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	clog "github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"keymap/internal/system"
)

// DefaultKillGrace is how long a cancelled child gets between SIGTERM and SIGKILL.
const DefaultKillGrace = 3 * time.Second

// ErrInterrupted is returned with the partial outcome of a cancelled run.
var ErrInterrupted = errors.New("command interrupted")

// SpawnError reports that the launcher could not be started.
type SpawnError struct {
	Launcher string
	Err      error
}

func (e *SpawnError) Error() string { return fmt.Sprintf("spawn %s: %v", e.Launcher, e.Err) }

func (e *SpawnError) Unwrap() error { return e.Err }

// StreamError reports a read failure on one of the child's output pipes.
type StreamError struct {
	Stream string
	Err    error
}

func (e *StreamError) Error() string { return fmt.Sprintf("read %s: %v", e.Stream, e.Err) }

func (e *StreamError) Unwrap() error { return e.Err }

// ExitStatus is how a child ended. A child killed by a signal has Code -1.
type ExitStatus struct {
	Code   int
	Signal syscall.Signal
}

func (s ExitStatus) Success() bool { return s.Code == 0 && s.Signal == 0 }

func (s ExitStatus) String() string {
	if s.Signal != 0 {
		return "signal: " + s.Signal.String()
	}
	return fmt.Sprintf("exit status %d", s.Code)
}

func statusOf(ps *os.ProcessState) ExitStatus {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{Code: -1, Signal: ws.Signal()}
	}
	return ExitStatus{Code: ps.ExitCode()}
}

// Outcome is the result of one run. Stdout and Stderr are empty for
// Interactive commands.
type Outcome struct {
	Class   Class
	Command string
	Stdout  string
	Stderr  string
	Status  ExitStatus
}

// Runner executes commands. The zero value runs through ScriptLauncher with
// the default classifier and the process's own standard streams.
type Runner struct {
	Launcher   Launcher
	Classifier *Classifier
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	// KillGrace bounds the wait between SIGTERM and SIGKILL on cancellation.
	KillGrace time.Duration
	Log       *clog.Logger
}

// New returns a runner with the default launcher and classifier bound to the
// process's standard streams.
func New() *Runner {
	return &Runner{
		Launcher:   ScriptLauncher(),
		Classifier: DefaultClassifier().WithEnvEditors(),
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		KillGrace:  DefaultKillGrace,
	}
}

func (r *Runner) launcher() Launcher {
	if r.Launcher.Path == "" {
		return ScriptLauncher()
	}
	return r.Launcher
}

func (r *Runner) log() *clog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return system.Logger
}

func (r *Runner) killGrace() time.Duration {
	if r.KillGrace > 0 {
		return r.KillGrace
	}
	return DefaultKillGrace
}

// Classify reports how command would run.
func (r *Runner) Classify(command string) Class {
	c := r.Classifier
	if c == nil {
		c = DefaultClassifier()
	}
	return c.Classify(command)
}

// Run classifies command and executes it. A non-zero exit is not an error.
func (r *Runner) Run(ctx context.Context, command string) (Outcome, error) {
	if r.Classify(command) == Interactive {
		return r.RunInteractive(ctx, command)
	}
	return r.RunCapturing(ctx, command)
}

// RunInteractive runs command attached to the runner's streams and waits for
// it. Cancelling ctx does not stop the child; it owns the terminal until it
// exits on its own.
func (r *Runner) RunInteractive(ctx context.Context, command string) (Outcome, error) {
	out := Outcome{Class: Interactive, Command: command}
	l := r.launcher()
	cmd := l.Command(context.WithoutCancel(ctx), command)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = r.stdin(), r.stdout(), r.stderr()

	r.log().Debug("spawn", "class", out.Class, "launcher", l, "command", command)
	if err := cmd.Start(); err != nil {
		return out, &SpawnError{Launcher: l.Path, Err: err}
	}
	err := cmd.Wait()
	if cmd.ProcessState == nil {
		return out, err
	}
	out.Status = statusOf(cmd.ProcessState)
	r.log().Debug("exit", "status", out.Status)
	return out, nil
}

// RunCapturing pipes stdout and stderr, drains both concurrently into
// separate accumulators while teeing each line to the runner's writer for
// that stream, then waits for the exit status.
//
// Cancelling ctx sends SIGTERM, then SIGKILL after KillGrace, and returns
// whatever was captured together with ErrInterrupted.
func (r *Runner) RunCapturing(ctx context.Context, command string) (Outcome, error) {
	out := Outcome{Class: Capturing, Command: command}
	if err := ctx.Err(); err != nil {
		return out, ErrInterrupted
	}
	l := r.launcher()
	cmd := l.Command(ctx, command)
	cmd.Stdin = r.stdin()
	cmd.Cancel = func() error { return cmd.Process.Signal(syscall.SIGTERM) }
	cmd.WaitDelay = r.killGrace()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return out, &SpawnError{Launcher: l.Path, Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return out, &SpawnError{Launcher: l.Path, Err: err}
	}

	r.log().Debug("spawn", "class", out.Class, "launcher", l, "command", command)
	if err := cmd.Start(); err != nil {
		return out, &SpawnError{Launcher: l.Path, Err: err}
	}

	// A grandchild can keep a pipe open after the child is killed; close
	// our ends once the grace period is over so the readers return.
	joined := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		t := time.NewTimer(r.killGrace())
		defer t.Stop()
		select {
		case <-joined:
		case <-t.C:
			_ = stdout.Close()
			_ = stderr.Close()
		}
	})
	defer stop()

	// Each reader owns one pipe and one accumulator.
	var outText, errText string
	var g errgroup.Group
	g.Go(func() error {
		text, err := capture(ctx, "stdout", stdout, r.stdout())
		outText = text
		return err
	})
	g.Go(func() error {
		text, err := capture(ctx, "stderr", stderr, r.stderr())
		errText = text
		return err
	})
	readErr := g.Wait()
	close(joined)
	out.Stdout, out.Stderr = outText, errText

	waitErr := cmd.Wait()
	if cmd.ProcessState != nil {
		out.Status = statusOf(cmd.ProcessState)
	}
	if readErr != nil {
		r.log().Error("capture failed", "command", command, "err", readErr)
		return out, readErr
	}
	if ctx.Err() != nil {
		r.log().Debug("interrupted", "status", out.Status)
		return out, ErrInterrupted
	}
	if cmd.ProcessState == nil {
		return out, waitErr
	}
	r.log().Debug("exit", "status", out.Status, "stdout_bytes", len(out.Stdout), "stderr_bytes", len(out.Stderr))
	return out, nil
}

// capture drains one output stream. A read failure is a *StreamError
// unless ctx was cancelled, in which case closed pipes are expected.
func capture(ctx context.Context, stream string, rd io.Reader, tee io.Writer) (string, error) {
	text, err := drain(rd, tee)
	if err != nil && ctx.Err() == nil {
		return text, &StreamError{Stream: stream, Err: err}
	}
	return text, nil
}

// drain reads rd line by line until EOF. Each line is copied to tee and kept
// without its terminator; the result joins lines with "\n".
func drain(rd io.Reader, tee io.Writer) (string, error) {
	br := bufio.NewReader(rd)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			lines = append(lines, line)
			_, _ = io.WriteString(tee, line+"\r\n")
		}
		if err == io.EOF {
			return strings.Join(lines, "\n"), nil
		}
		if err != nil {
			return strings.Join(lines, "\n"), err
		}
	}
}

func (r *Runner) stdin() io.Reader {
	if r.Stdin == nil {
		return os.Stdin
	}
	return r.Stdin
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}
