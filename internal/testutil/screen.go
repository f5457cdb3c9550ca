package testutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/vt"

	"keymap/internal/terminal"
)

// Screen is an emulated terminal implementing terminal.Port. Output is
// queued until Flush (or a cursor query) and then fed to a vt emulator, so
// cursor reports reflect what a real terminal would answer.
type Screen struct {
	emu    *vt.Emulator
	queued strings.Builder
	raw    strings.Builder

	// Injected failures, returned verbatim when set.
	WriteErr  error
	FlushErr  error
	CursorErr error

	Queries  int
	Released int
}

// NewScreen returns a cols x rows screen with the cursor at the origin.
func NewScreen(cols, rows int) *Screen {
	return &Screen{emu: vt.NewEmulator(cols, rows)}
}

func (s *Screen) WriteString(seq string) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.queued.WriteString(seq)
	return nil
}

func (s *Screen) Flush() error {
	if s.FlushErr != nil {
		return s.FlushErr
	}
	s.flush()
	return nil
}

func (s *Screen) flush() {
	if s.queued.Len() == 0 {
		return
	}
	out := s.queued.String()
	s.queued.Reset()
	s.raw.WriteString(out)
	_, _ = s.emu.Write([]byte(out))
}

func (s *Screen) CursorPosition() (terminal.Position, error) {
	if s.CursorErr != nil {
		return terminal.Position{}, s.CursorErr
	}
	s.Queries++
	s.flush()
	return s.Cursor(), nil
}

// Release flushes queued output and counts the call.
func (s *Screen) Release() error {
	s.flush()
	s.Released++
	return nil
}

// Cursor returns the 1-based cursor position without counting a query.
func (s *Screen) Cursor() terminal.Position {
	p := s.emu.CursorPosition()
	return terminal.Position{Col: p.X + 1, Row: p.Y + 1}
}

// Raw returns every byte flushed so far.
func (s *Screen) Raw() string { return s.raw.String() }

// Lines returns the visible rows without styling or trailing blanks.
func (s *Screen) Lines() []string {
	s.flush()
	rows := strings.Split(s.emu.Render(), "\n")
	for i, r := range rows {
		rows[i] = strings.TrimRight(ansi.Strip(strings.TrimSuffix(r, "\r")), " ")
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// Line returns visible row n (1-based), or "" past the last non-blank row.
func (s *Screen) Line(n int) string {
	rows := s.Lines()
	if n < 1 || n > len(rows) {
		return ""
	}
	return rows[n-1]
}

// Text returns the visible rows joined with newlines.
func (s *Screen) Text() string { return strings.Join(s.Lines(), "\n") }
