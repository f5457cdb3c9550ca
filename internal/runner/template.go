package runner

import "strings"

// DefaultPlaceholder marks where user input goes in a command template.
const DefaultPlaceholder = "{}"

// EscapeBackticks prefixes every backtick with a backslash so the input
// cannot start a command substitution once handed to a shell. It is the only
// sanitization applied; other shell metacharacters pass through unchanged.
func EscapeBackticks(s string) string {
	return strings.ReplaceAll(s, "`", "\\`")
}

// Substitute replaces every placeholder in template with the escaped input.
// An empty placeholder means DefaultPlaceholder.
func Substitute(template, placeholder, input string) string {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return strings.ReplaceAll(template, placeholder, EscapeBackticks(input))
}
