package editor

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is the outcome of an editing session.
type Kind int

const (
	// None means no input was requested.
	None Kind = iota
	// Text carries committed, trimmed, non-empty input.
	Text
	// Cancel means the user abandoned the prompt.
	Cancel
)

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Text:
		return "text"
	case Cancel:
		return "cancel"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Result is what a session produced. Text is only set for Kind Text.
type Result struct {
	Kind Kind
	Text string
}

var (
	// ErrEmptyInput is returned when the committed text is empty after trimming.
	ErrEmptyInput = errors.New("input was empty")
	// ErrSessionDone is returned by Run on an editor that already finished.
	ErrSessionDone = errors.New("editor session already finished")
)

// NonUTF8Error reports a key whose bytes are not a single ASCII character.
type NonUTF8Error struct {
	Bytes []byte
}

func (e *NonUTF8Error) Error() string {
	hex := make([]string, len(e.Bytes))
	for i, b := range e.Bytes {
		hex[i] = fmt.Sprintf("0x%02X", b)
	}
	return "input contained non-UTF8 bytes: [" + strings.Join(hex, " ") + "]"
}

// IOError wraps a failure of the terminal port or the key source. Op is one
// of "write", "flush", "cursor" or "read".
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string { return "i/o error: " + e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }
