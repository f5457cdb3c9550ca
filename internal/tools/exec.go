package tools

import (
	"context"
	"errors"
	"os"
	"os/exec"
)

// banner runs a version query and returns what it printed. Some programs
// print their banner and still exit non-zero (busybox applets, dash), so a
// plain exit failure keeps the output; a missing binary or a timeout does
// not.
func banner(ctx context.Context, path string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1", "PAGER=cat", "LC_ALL=C")
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	var ee *exec.ExitError
	if err != nil && !errors.As(err, &ee) {
		return "", err
	}
	return string(out), nil
}
