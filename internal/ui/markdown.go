package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/lipgloss"

	"keymap/internal/keymap"
)

// KeymapMarkdown lists the table as a markdown table.
func KeymapMarkdown(t keymap.Table) string {
	var b strings.Builder
	b.WriteString("| Key | Description | Command | Prompt |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, k := range t {
		fmt.Fprintf(&b, "| `%c` | %s | `%s` | %s |\n",
			k.Key, cell(k.Description), cell(k.Command), cell(k.Prompt))
	}
	return b.String()
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderMarkdown renders md for the terminal with the Vitesse styles.
func RenderMarkdown(md string, width int) (string, error) {
	wrap := width - 2
	if wrap < 20 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(vitesseGlamour()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func vitesseGlamour() gansi.StyleConfig {
	// drop the alpha channel glamour cannot use
	hex := func(c lipgloss.Color) *string {
		s := string(c)
		if strings.HasPrefix(s, "#") && len(s) == 9 {
			s = s[:7]
		}
		return &s
	}
	bp := func(b bool) *bool { return &b }
	margin := uint(1)

	return gansi.StyleConfig{
		Document: gansi.StyleBlock{
			StylePrimitive: gansi.StylePrimitive{Color: hex(Vitesse.Text)},
			Margin:         &margin,
		},
		Paragraph: gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: hex(Vitesse.Text)}},
		Heading:   gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: hex(Vitesse.Blue), Bold: bp(true)}},
		Text:      gansi.StylePrimitive{Color: hex(Vitesse.Text)},
		Strong:    gansi.StylePrimitive{Bold: bp(true)},
		Code: gansi.StyleBlock{
			StylePrimitive: gansi.StylePrimitive{Color: hex(Vitesse.Yellow), BackgroundColor: hex(Vitesse.BgSoft)},
		},
		Table: gansi.StyleTable{
			StyleBlock: gansi.StyleBlock{StylePrimitive: gansi.StylePrimitive{Color: hex(Vitesse.Secondary)}},
		},
	}
}
