package system

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// gitTimeout bounds each git call so a slow repository never delays the menu.
const gitTimeout = 800 * time.Millisecond

// GitInfo is the repository state shown in the menu header.
type GitInfo struct {
	InRepo   bool
	Branch   string
	ShortSHA string
	Dirty    bool
}

// Label renders the info for a header, e.g. "main@1a2b3c4*". Empty outside a
// repository.
func (g GitInfo) Label() string {
	if !g.InRepo {
		return ""
	}
	s := g.Branch
	if s == "" {
		s = "HEAD"
	}
	if g.ShortSHA != "" {
		s += "@" + g.ShortSHA
	}
	if g.Dirty {
		s += "*"
	}
	return s
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, gitTimeout)
	defer cancel()
	out, err := exec.CommandContext(cctx, "git", append([]string{"-C", dir}, args...)...).Output()
	return strings.TrimSpace(string(out)), err
}

// GetGitInfo inspects the repository containing dir. Missing git or a
// directory outside a work tree yields a zero GitInfo and no error.
func GetGitInfo(ctx context.Context, dir string) GitInfo {
	var gi GitInfo
	if _, err := exec.LookPath("git"); err != nil {
		return gi
	}
	if out, err := git(ctx, dir, "rev-parse", "--is-inside-work-tree"); err != nil || out != "true" {
		return gi
	}
	gi.InRepo = true

	if b, err := git(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD"); err == nil {
		gi.Branch = b
	} else if b, err := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"); err == nil {
		// detached head
		gi.Branch = b
	}
	if sha, err := git(ctx, dir, "rev-parse", "--short", "HEAD"); err == nil {
		gi.ShortSHA = sha
	}
	if st, err := git(ctx, dir, "status", "--porcelain"); err == nil {
		gi.Dirty = st != ""
	}
	return gi
}
