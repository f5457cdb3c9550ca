package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// CheckTool looks the tool up in PATH and asks it for its version.
func CheckTool(ctx context.Context, t ToolInfo) CheckResult {
	res := CheckResult{Tool: t}
	for _, bin := range t.Binaries {
		path, err := exec.LookPath(bin)
		if err != nil {
			continue
		}
		res.Installed, res.Path, res.Source = true, path, bin
		for _, args := range t.VersionArgs {
			cctx, cancel := context.WithTimeout(ctx, 3*time.Second)
			out, err := banner(cctx, path, args...)
			cancel()
			if err != nil {
				continue
			}
			if v, ok := ParseVersion(out); ok {
				res.Version = v.String()
				res.Source = fmt.Sprintf("%s %s", bin, strings.Join(args, " "))
				break
			}
		}
		// A binary without a readable version still counts as installed.
		if t.MinVersion != "" && res.Version != "" && VersionLess(res.Version, t.MinVersion) {
			res.Outdated = true
			res.Err = fmt.Sprintf("version %s is older than %s", res.Version, t.MinVersion)
		}
		return res
	}
	res.Err = "not found in PATH"
	return res
}

// CheckAll checks every tool concurrently and returns results in the order
// given.
func CheckAll(ctx context.Context, tools []ToolInfo) []CheckResult {
	results := make([]CheckResult, len(tools))
	var g errgroup.Group
	g.SetLimit(4)
	for i, t := range tools {
		g.Go(func() error {
			results[i] = CheckTool(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
