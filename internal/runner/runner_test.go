package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"testing"
	"testing/iotest"
	"time"
)

func shellRunner(prefixes ...string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Runner{
		Launcher:   ShellLauncher(),
		Classifier: NewClassifier(prefixes...),
		Stdin:      strings.NewReader(""),
		Stdout:     &stdout,
		Stderr:     &stderr,
		KillGrace:  200 * time.Millisecond,
	}, &stdout, &stderr
}

func TestRunSimpleCapture(t *testing.T) {
	r, tee, _ := shellRunner()
	out, err := r.Run(context.Background(), Substitute("echo {}", "{}", "test"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Class != Capturing || out.Command != "echo test" {
		t.Fatalf("outcome: %+v", out)
	}
	if out.Stdout != "test" || out.Stderr != "" || !out.Status.Success() {
		t.Fatalf("got stdout %q stderr %q status %v", out.Stdout, out.Stderr, out.Status)
	}
	if tee.String() != "test\r\n" {
		t.Fatalf("tee: %q", tee.String())
	}
}

func TestRunStreamIndependence(t *testing.T) {
	cases := map[string]string{
		"stdout first": `for i in 1 2 3 4; do echo out$i; sleep 0.02; echo err$i >&2; done`,
		"stderr first": `for i in 1 2 3 4; do echo err$i >&2; sleep 0.02; echo out$i; done`,
		"stderr slow":  `echo out1; echo out2; echo out3; echo out4; sleep 0.1; for i in 1 2 3 4; do echo err$i >&2; sleep 0.02; done`,
	}
	for name, script := range cases {
		t.Run(name, func(t *testing.T) {
			r, teeOut, teeErr := shellRunner()
			out, err := r.Run(context.Background(), script)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if out.Stdout != "out1\nout2\nout3\nout4" {
				t.Fatalf("stdout %q", out.Stdout)
			}
			if out.Stderr != "err1\nerr2\nerr3\nerr4" {
				t.Fatalf("stderr %q", out.Stderr)
			}
			if teeOut.String() != "out1\r\nout2\r\nout3\r\nout4\r\n" || strings.Contains(teeErr.String(), "out") {
				t.Fatalf("tee stdout %q stderr %q", teeOut.String(), teeErr.String())
			}
		})
	}
}

func TestRunDrainsBothPipesWithoutDeadlock(t *testing.T) {
	// Well past a pipe buffer on stderr before anything reaches stdout.
	script := `i=0; while [ $i -lt 3000 ]; do echo eeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeeee >&2; i=$((i+1)); done; echo done`
	r, _, _ := shellRunner()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	out, err := r.Run(ctx, script)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Stdout != "done" {
		t.Fatalf("stdout %q", out.Stdout)
	}
	if n := strings.Count(out.Stderr, "\n") + 1; n != 3000 {
		t.Fatalf("stderr lines %d", n)
	}
}

func TestRunStripsCRLF(t *testing.T) {
	r, _, _ := shellRunner()
	out, err := r.Run(context.Background(), `printf 'a\r\nb\r\n'`)
	if err != nil {
		t.Fatal(err)
	}
	if out.Stdout != "a\nb" {
		t.Fatalf("stdout %q", out.Stdout)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	r, _, _ := shellRunner()
	out, err := r.Run(context.Background(), "echo oops >&2; exit 3")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Status.Code != 3 || out.Status.Success() || out.Stderr != "oops" {
		t.Fatalf("outcome %+v", out)
	}
}

func TestRunSignalledChild(t *testing.T) {
	r, _, _ := shellRunner()
	out, err := r.Run(context.Background(), "kill -TERM $$")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Status.Code != -1 || out.Status.Signal != syscall.SIGTERM {
		t.Fatalf("status %+v", out.Status)
	}
}

func TestRunBacktickInputStaysLiteral(t *testing.T) {
	r, _, _ := shellRunner()
	cmd := Substitute("echo {}", "{}", "a`b")
	if cmd != "echo a\\`b" {
		t.Fatalf("substituted %q", cmd)
	}
	out, err := r.Run(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Stdout != "a`b" {
		t.Fatalf("stdout %q", out.Stdout)
	}
}

func TestRunSpawnFailure(t *testing.T) {
	r, _, _ := shellRunner()
	r.Launcher = Launcher{Path: "/nonexistent/launcher", Args: []string{"-c"}}
	_, err := r.Run(context.Background(), "true")
	var se *SpawnError
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want SpawnError", err)
	}
	if se.Launcher != "/nonexistent/launcher" {
		t.Fatalf("launcher %q", se.Launcher)
	}
}

func TestRunInteractivePassesThrough(t *testing.T) {
	r, stdout, _ := shellRunner("printf")
	out, err := r.Run(context.Background(), "printf hi; exit 4")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Class != Interactive || out.Stdout != "" || out.Stderr != "" {
		t.Fatalf("outcome %+v", out)
	}
	if out.Status.Code != 4 {
		t.Fatalf("status %+v", out.Status)
	}
	if stdout.String() != "hi" {
		t.Fatalf("terminal got %q", stdout.String())
	}
}

func TestRunCancelReturnsPartialOutcome(t *testing.T) {
	r, _, _ := shellRunner()
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	start := time.Now()
	out, err := r.Run(ctx, "echo started; exec sleep 10")
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("got %v, want ErrInterrupted", err)
	}
	if out.Stdout != "started" {
		t.Fatalf("partial stdout %q", out.Stdout)
	}
	if out.Status.Signal != syscall.SIGTERM {
		t.Fatalf("status %+v", out.Status)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("cancel took %v", elapsed)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	r, _, _ := shellRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, "echo never"); !errors.Is(err, ErrInterrupted) {
		t.Fatalf("got %v", err)
	}
}

func TestScriptLauncherCapture(t *testing.T) {
	if _, err := exec.LookPath("script"); err != nil {
		t.Skip("script not installed")
	}
	r, _, _ := shellRunner()
	r.Launcher = ScriptLauncher()
	out, err := r.Run(context.Background(), "echo via-script")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.Stdout, "via-script") {
		t.Fatalf("stdout %q", out.Stdout)
	}
}

func TestCaptureReportsReadFailure(t *testing.T) {
	boom := errors.New("pipe broke")
	for _, stream := range []string{"stdout", "stderr"} {
		var tee bytes.Buffer
		rd := io.MultiReader(strings.NewReader("a\r\nb"), iotest.ErrReader(boom))
		text, err := capture(context.Background(), stream, rd, &tee)
		var se *StreamError
		if !errors.As(err, &se) || se.Stream != stream || !errors.Is(err, boom) {
			t.Fatalf("%s: got %v, want StreamError wrapping %v", stream, err, boom)
		}
		if text != "a\nb" || tee.String() != "a\r\nb\r\n" {
			t.Fatalf("%s: text %q tee %q", stream, text, tee.String())
		}
		if err.Error() != "read "+stream+": pipe broke" {
			t.Fatalf("message %q", err.Error())
		}
	}
}

func TestCaptureIgnoresReadFailureAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text, err := capture(ctx, "stdout", io.MultiReader(strings.NewReader("x\n"), iotest.ErrReader(os.ErrClosed)), io.Discard)
	if err != nil || text != "x" {
		t.Fatalf("got %q %v", text, err)
	}
}
