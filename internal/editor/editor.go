// Package editor implements a single-line, raw-mode text editor driven by
// key events. Where the line starts and how wide the screen is come from the
// terminal's cursor reports; the buffer column is the cursor.
package editor

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"

	"keymap/internal/terminal"
)

// Editor is one editing session. It yields exactly one outcome; a finished
// editor returns ErrSessionDone.
//
// The buffer column is the cursor. Where the text sits on screen is learned
// from the terminal on the first edit: the row the session starts on and the
// screen size, found by asking for the cursor position after moving it to
// the far corner. Text longer than a row wraps onto the next ones and every
// redraw starts from the anchor row.
type Editor struct {
	port terminal.Port
	keys terminal.KeySource
	buf  *Buffer
	done bool

	anchored bool
	start    int // row of the first text cell
	cols     int // 0 when the terminal reported no usable size
	rows     int
}

// corner is far enough out that CUP clamps it to the bottom-right cell.
const corner = 9999

// New returns an editor writing to port and reading from keys. The cursor is
// expected to sit at the start of an empty line.
func New(port terminal.Port, keys terminal.KeySource) *Editor {
	return &Editor{port: port, keys: keys, buf: NewBuffer()}
}

// ReadLine runs a fresh session to completion.
func ReadLine(port terminal.Port, keys terminal.KeySource) (Result, error) {
	return New(port, keys).Run()
}

// Buffer exposes the session buffer.
func (e *Editor) Buffer() *Buffer { return e.buf }

// Run reads keys until Enter, Escape, end of input or an error.
func (e *Editor) Run() (Result, error) {
	if e.done {
		return Result{}, ErrSessionDone
	}
	defer func() { e.done = true }()

	for {
		k, err := e.keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return e.finish(e.commit())
		}
		if err != nil {
			return Result{}, &IOError{Op: "read", Err: err}
		}
		res, finished, err := e.handle(k)
		if err != nil {
			return Result{}, err
		}
		if finished {
			return e.finish(res, nil)
		}
		if err := e.port.Flush(); err != nil {
			return Result{}, &IOError{Op: "flush", Err: err}
		}
	}
}

func (e *Editor) commit() (Result, error) {
	s := strings.TrimSpace(e.buf.String())
	if s == "" {
		return Result{}, ErrEmptyInput
	}
	return Result{Kind: Text, Text: s}, nil
}

// finish leaves the cursor after the text so whatever the caller prints next
// starts below it.
func (e *Editor) finish(res Result, err error) (Result, error) {
	if err != nil || !e.anchored {
		return res, err
	}
	if err := e.moveTo(e.buf.Len() + 1); err != nil {
		return Result{}, err
	}
	if err := e.port.Flush(); err != nil {
		return Result{}, &IOError{Op: "flush", Err: err}
	}
	return res, nil
}

func (e *Editor) handle(k terminal.Key) (Result, bool, error) {
	switch k.Type {
	case terminal.KeyEnter:
		res, err := e.commit()
		return res, true, err
	case terminal.KeyEscape, terminal.KeyCtrlC:
		return Result{Kind: Cancel}, true, nil
	case terminal.KeyRune:
		if len(k.Bytes) != 1 || k.Bytes[0] >= utf8.RuneSelf {
			b := k.Bytes
			if len(b) == 0 {
				b = []byte(string(k.Rune))
			}
			return Result{}, true, &NonUTF8Error{Bytes: b}
		}
		return Result{}, false, e.insert(k.Bytes[0])
	case terminal.KeyLeft:
		if e.buf.Col() <= 1 {
			return Result{}, false, nil
		}
		e.buf.SetCol(e.buf.Col() - 1)
		return Result{}, false, e.moveTo(e.buf.Col())
	case terminal.KeyRight:
		if e.buf.Col() > e.buf.Len() {
			return Result{}, false, nil
		}
		e.buf.SetCol(e.buf.Col() + 1)
		return Result{}, false, e.moveTo(e.buf.Col())
	case terminal.KeyBackspace:
		return Result{}, false, e.backspace()
	}
	return Result{}, false, nil
}

func (e *Editor) insert(c byte) error {
	if err := e.anchor(); err != nil {
		return err
	}
	e.buf.Insert(c)
	return e.redraw()
}

func (e *Editor) backspace() error {
	if !e.buf.DeleteBefore() {
		return nil
	}
	if err := e.anchor(); err != nil {
		return err
	}
	return e.redraw()
}

// anchor records the starting row and the screen size once per session.
func (e *Editor) anchor() error {
	if e.anchored {
		return nil
	}
	pos, err := e.position()
	if err != nil {
		return err
	}
	if err := e.write(ansi.CursorPosition(corner, corner)); err != nil {
		return err
	}
	size, err := e.position()
	if err != nil {
		return err
	}
	e.start = max(pos.Row, 1)
	if size.Col > 0 {
		e.cols = size.Col
	}
	if size.Row >= e.start {
		e.rows = size.Row
	}
	e.anchored = true
	return e.write(ansi.CursorPosition(1, e.start))
}

// cell maps a buffer column to a screen position.
func (e *Editor) cell(col int) (x, y int) {
	if e.cols == 0 {
		return col, e.start
	}
	return (col-1)%e.cols + 1, e.start + (col-1)/e.cols
}

// redraw clears from the anchor down, rewrites the whole buffer and places
// the cursor. When the text needs rows below the screen, the screen is
// scrolled first and the anchor moves up with it.
func (e *Editor) redraw() error {
	if err := e.scroll(); err != nil {
		return err
	}
	x, y := e.cell(e.buf.Col())
	return e.write(ansi.CursorPosition(1, e.start) + ansi.EraseScreenBelow +
		e.buf.String() + ansi.CursorPosition(x, y))
}

func (e *Editor) scroll() error {
	if e.cols == 0 || e.rows == 0 {
		return nil
	}
	_, last := e.cell(e.buf.Len() + 1)
	n := min(last-e.rows, e.start-1)
	if n <= 0 {
		return nil
	}
	e.start -= n
	return e.write(ansi.CursorPosition(1, e.rows) + strings.Repeat("\n", n))
}

func (e *Editor) moveTo(col int) error {
	if err := e.anchor(); err != nil {
		return err
	}
	x, y := e.cell(col)
	return e.write(ansi.CursorPosition(x, y))
}

func (e *Editor) write(seq string) error {
	if err := e.port.WriteString(seq); err != nil {
		return &IOError{Op: "write", Err: err}
	}
	return nil
}

func (e *Editor) position() (terminal.Position, error) {
	pos, err := e.port.CursorPosition()
	if err != nil {
		return pos, &IOError{Op: "cursor", Err: err}
	}
	return pos, nil
}
