package ui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Table builds left-aligned table lines that fit into width. Column widths
// follow the content; the last columns are truncated first when the table
// is too wide. width <= 0 disables fitting.
func Table(width int, headers []string, rows [][]string) []string {
	cols := len(headers)
	if cols == 0 {
		return nil
	}
	const sep = "  "
	desired := make([]int, cols)
	widen := func(i int, s string) {
		if w := xansi.StringWidth(s); w > desired[i] {
			desired[i] = w
		}
	}
	for i, h := range headers {
		widen(i, h)
	}
	for _, r := range rows {
		for i := 0; i < cols && i < len(r); i++ {
			widen(i, r[i])
		}
	}

	widths := append([]int{}, desired...)
	if width > 0 {
		remaining := width - len(sep)*(cols-1)
		for i := 0; i < cols; i++ {
			// leave at least 1 for each remaining col
			limit := remaining - (cols - 1 - i)
			if limit < 1 {
				limit = 1
			}
			if widths[i] > limit {
				widths[i] = limit
			}
			remaining -= widths[i]
		}
	}

	line := func(cells []string, style func(string) string) string {
		out := make([]string, cols)
		for i := 0; i < cols; i++ {
			var val string
			if i < len(cells) {
				val = cells[i]
			}
			val = fit(val, widths[i])
			if i == cols-1 {
				val = strings.TrimRight(val, " ")
			}
			if style != nil {
				val = style(val)
			}
			out[i] = val
		}
		return strings.Join(out, sep)
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, line(headers, func(s string) string { return AccentBold().Render(s) }))
	for _, r := range rows {
		out = append(out, line(r, nil))
	}
	return out
}

// fit pads or truncates s to exactly w cells. Styled strings are only
// padded.
func fit(s string, w int) string {
	sw := xansi.StringWidth(s)
	switch {
	case sw == w:
		return s
	case sw < w:
		return s + strings.Repeat(" ", w-sw)
	case sw != runewidth.StringWidth(s):
		return s
	}
	return runewidth.Truncate(s, w, "…")
}
