package runner

import (
	"context"
	"os/exec"
	"strings"
)

// Launcher wraps a command string into an argv: Path Args... <command> Trailer...
type Launcher struct {
	Path    string
	Args    []string
	Trailer []string
}

// ScriptLauncher runs commands under script(1) so the child sees a terminal
// even when its output is piped: script -qec "<command>" /dev/null.
func ScriptLauncher() Launcher {
	return Launcher{Path: "script", Args: []string{"-qec"}, Trailer: []string{"/dev/null"}}
}

// ShellLauncher runs commands with /bin/sh -c and no pty.
func ShellLauncher() Launcher {
	return Launcher{Path: "/bin/sh", Args: []string{"-c"}}
}

// Argv returns the full argument vector for command.
func (l Launcher) Argv(command string) []string {
	argv := make([]string, 0, len(l.Args)+len(l.Trailer)+2)
	argv = append(argv, l.Path)
	argv = append(argv, l.Args...)
	argv = append(argv, command)
	return append(argv, l.Trailer...)
}

// Command builds the process for command.
func (l Launcher) Command(ctx context.Context, command string) *exec.Cmd {
	argv := l.Argv(command)
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

func (l Launcher) String() string {
	return strings.Join(append([]string{l.Path}, l.Args...), " ")
}
