package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"keymap/internal/keymap"
	"keymap/internal/runner"
	"keymap/internal/system"
)

// MenuTitle heads the menu.
const MenuTitle = "Please select a command:"

// Header returns the menu title, followed by the branch when inside a
// repository.
func Header(git system.GitInfo) string {
	h := MenuTitle
	if label := git.Label(); label != "" {
		h += "  " + ChipStyle(Vitesse.Blue).Render(label)
	}
	return h
}

// MenuLine renders one entry as "k  description". Descriptions wider than
// width are truncated; width <= 0 disables truncation.
func MenuLine(k keymap.Keymap, width int) string {
	desc := k.Description
	if width > 3 && runewidth.StringWidth(desc) > width-3 {
		desc = runewidth.Truncate(desc, width-3, "…")
	}
	return KeyStyle().Render(string(k.Key)) + "  " + desc
}

// Menu renders the whole screen body with CRLF line ends, as needed in raw
// mode.
func Menu(git system.GitInfo, t keymap.Table, width int) string {
	var b strings.Builder
	b.WriteString(Header(git))
	b.WriteString("\r\n")
	for _, k := range t {
		b.WriteString(MenuLine(k, width))
		b.WriteString("\r\n")
	}
	return b.String()
}

// ClearScreen erases the screen, homes the cursor and hides it.
func ClearScreen() string {
	return ansi.EraseEntireScreen + ansi.CursorPosition(1, 1) + ansi.HideCursor
}

// StatusLine reports how a command ended.
func StatusLine(s runner.ExitStatus) string {
	if s.Success() {
		return AccentBold().Render("Command executed successfully")
	}
	return ErrorStyle().Render(fmt.Sprintf("Command failed with exit code %d", s.Code))
}

// InvalidInput reports a rejected prompt answer.
func InvalidInput(err error) string {
	return "Invalid input: " + err.Error()
}
