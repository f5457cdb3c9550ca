// Package tools checks that the programs keymap relies on are installed.
package tools

// ToolInfo describes one program the doctor looks for.
type ToolInfo struct {
	Name        string
	Purpose     string
	Binaries    []string // candidate binary names in PATH, or absolute paths
	VersionArgs [][]string
	// MinVersion, when set, marks older installs as outdated.
	MinVersion string
	// Required tools make the doctor fail when missing.
	Required bool
}

// CheckResult is what CheckTool found for one tool.
type CheckResult struct {
	Tool      ToolInfo
	Installed bool
	Path      string
	Version   string
	Source    string // which invocation produced the version
	Outdated  bool
	Err       string
}

// OK reports whether the result should not fail the doctor.
func (r CheckResult) OK() bool {
	if !r.Tool.Required {
		return true
	}
	return r.Installed && !r.Outdated
}
