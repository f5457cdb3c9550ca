// Package terminal provides the cursor-query terminal port used by the line
// editor, key event decoding, and a raw-mode /dev/tty implementation.
package terminal

import (
	"errors"
	"fmt"
)

// Position is a 1-based cursor location as reported by the terminal.
type Position struct {
	Col int
	Row int
}

func (p Position) String() string { return fmt.Sprintf("%d;%d", p.Row, p.Col) }

// Port is the capability pair the editor depends on: write escape sequences
// and ask the terminal where the cursor actually is. The terminal is the only
// source of truth for where a line starts and how large the screen is.
type Port interface {
	// WriteString queues raw bytes or escape sequences.
	WriteString(seq string) error
	// CursorPosition issues a cursor position request and blocks until the
	// terminal answers.
	CursorPosition() (Position, error)
	// Flush pushes queued output to the terminal.
	Flush() error
}

var (
	// ErrCursorTimeout is returned when the terminal does not answer a cursor
	// position request within the configured timeout.
	ErrCursorTimeout = errors.New("terminal did not report cursor position")
	// ErrCursorReport is returned when the reply cannot be parsed.
	ErrCursorReport = errors.New("malformed cursor position report")
)
