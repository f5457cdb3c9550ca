package tools

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version is the part of a tool's --version banner the doctor compares.
// Build suffixes such as git's ".windows.1" are kept in Raw only.
type Version struct {
	Major, Minor, Patch int
	Pre                 string // after '-' or '~', e.g. "rc1"
	Raw                 string
}

var (
	// "git version 2.43.0", "lazygit: ..., version=0.44.1",
	// "script from util-linux 2.39.3", "script (util-linux) 2.40".
	keyedRe = regexp.MustCompile(`(?i)\b(?:version|util-linux)\)?[\s:=]*v?(\d+\.\d+[0-9A-Za-z.+~-]*)`)
	bareRe  = regexp.MustCompile(`\bv?(\d+\.\d+[0-9A-Za-z.+~-]*)`)
	coreRe  = regexp.MustCompile(`^(\d+)\.(\d+)(?:\.(\d+))?`)
)

// ParseVersion finds the version in a tool's banner. A number after
// "version" or "util-linux" wins over the first dotted number, so build
// dates and commit fields are skipped. Only the first non-blank line that
// carries a version is used.
func ParseVersion(out string) (Version, bool) {
	for line := range strings.Lines(out) {
		for _, re := range []*regexp.Regexp{keyedRe, bareRe} {
			if m := re.FindStringSubmatch(line); m != nil {
				return parseToken(m[1])
			}
		}
	}
	return Version{}, false
}

func parseToken(tok string) (Version, bool) {
	tok = strings.TrimRight(tok, ".-+~")
	m := coreRe.FindStringSubmatch(tok)
	if m == nil {
		return Version{}, false
	}
	v := Version{Raw: tok}
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	rest := tok[len(m[0]):]
	if rest != "" && (rest[0] == '-' || rest[0] == '~') {
		v.Pre, _, _ = strings.Cut(rest[1:], "+")
	}
	return v, true
}

func (v Version) String() string {
	if v.Raw != "" {
		return v.Raw
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Pre != "" {
		s += "-" + v.Pre
	}
	return s
}

// Less orders by the numeric core; a pre-release sorts before its release.
func (v Version) Less(o Version) bool {
	switch {
	case v.Major != o.Major:
		return v.Major < o.Major
	case v.Minor != o.Minor:
		return v.Minor < o.Minor
	case v.Patch != o.Patch:
		return v.Patch < o.Patch
	}
	return v.Pre != "" && o.Pre == ""
}

// VersionLess reports whether a is older than b. Unparsable input is never
// older.
func VersionLess(a, b string) bool {
	va, ok := ParseVersion(a)
	if !ok {
		return false
	}
	vb, ok := ParseVersion(b)
	if !ok {
		return false
	}
	return va.Less(vb)
}
