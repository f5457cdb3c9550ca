package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"
)

// DefaultCursorTimeout bounds how long CursorPosition waits for a reply.
const DefaultCursorTimeout = 2 * time.Second

// Options configure a TTY.
type Options struct {
	// CursorTimeout bounds a cursor position query. Zero waits forever.
	CursorTimeout time.Duration
}

// TTY is a raw-mode terminal. It implements Port and KeySource over the same
// file so cursor reports and key presses share one input stream; bytes that
// arrive ahead of a cursor report are kept for ReadKey.
type TTY struct {
	in      *os.File
	out     *os.File
	owned   bool
	w       *bufio.Writer
	rd      *bufio.Reader
	pending []byte
	state   *term.State
	timeout time.Duration
	closed  bool
}

// Open opens the controlling terminal and puts it in raw mode.
func Open(opts Options) (*TTY, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	t, err := New(f, f, opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	t.owned = true
	return t, nil
}

// New wraps in and out, switching in to raw mode. The caller keeps ownership
// of the files; Release only restores the terminal state.
func New(in, out *os.File, opts Options) (*TTY, error) {
	t := &TTY{
		in:      in,
		out:     out,
		w:       bufio.NewWriter(out),
		rd:      bufio.NewReader(in),
		timeout: opts.CursorTimeout,
	}
	// Fd() would switch the file to blocking mode and disable read
	// deadlines, so go through the raw conn instead.
	err := control(in, func(fd int) error {
		st, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		t.state = st
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	return t, nil
}

func control(f *os.File, fn func(fd int) error) error {
	rc, err := f.SyscallConn()
	if err != nil {
		return err
	}
	var inner error
	if err := rc.Control(func(fd uintptr) { inner = fn(int(fd)) }); err != nil {
		return err
	}
	return inner
}

// WriteString implements Port.
func (t *TTY) WriteString(seq string) error {
	if t.closed {
		return os.ErrClosed
	}
	_, err := t.w.WriteString(seq)
	return err
}

// Flush implements Port.
func (t *TTY) Flush() error {
	if t.closed {
		return os.ErrClosed
	}
	return t.w.Flush()
}

// CursorPosition implements Port.
func (t *TTY) CursorPosition() (Position, error) {
	if t.closed {
		return Position{}, os.ErrClosed
	}
	if _, err := t.w.WriteString(ansi.RequestCursorPositionReport); err != nil {
		return Position{}, err
	}
	if err := t.w.Flush(); err != nil {
		return Position{}, err
	}
	if t.timeout > 0 {
		// Not every file supports deadlines; then the read blocks.
		if err := t.in.SetReadDeadline(time.Now().Add(t.timeout)); err == nil {
			defer func() { _ = t.in.SetReadDeadline(time.Time{}) }()
		}
	}

	var seq []byte
	for {
		b, err := t.rd.ReadByte()
		if err != nil {
			t.pending = append(t.pending, seq...)
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return Position{}, ErrCursorTimeout
			}
			return Position{}, err
		}
		switch {
		case len(seq) == 0:
			if b == esc {
				seq = append(seq, b)
			} else {
				t.pending = append(t.pending, b)
			}
		case len(seq) == 1:
			if b == '[' {
				seq = append(seq, b)
				continue
			}
			t.pending = append(t.pending, seq...)
			seq = nil
			if b == esc {
				seq = append(seq, b)
			} else {
				t.pending = append(t.pending, b)
			}
		default:
			seq = append(seq, b)
			if b == 'R' {
				return parseCursorReport(seq)
			}
			if (b >= '0' && b <= '9') || b == ';' {
				continue
			}
			// Some other sequence typed ahead of the reply.
			t.pending = append(t.pending, seq...)
			seq = nil
		}
	}
}

// parseCursorReport parses "CSI row ; col R".
func parseCursorReport(seq []byte) (Position, error) {
	s := string(seq)
	if !strings.HasPrefix(s, "\x1b[") || !strings.HasSuffix(s, "R") {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, s)
	}
	parts := strings.Split(s[2:len(s)-1], ";")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, s)
	}
	row, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || row < 1 || col < 1 {
		return Position{}, fmt.Errorf("%w: %q", ErrCursorReport, s)
	}
	return Position{Col: col, Row: row}, nil
}

// ReadKey implements KeySource.
func (t *TTY) ReadKey() (Key, error) {
	if t.closed {
		return Key{}, os.ErrClosed
	}
	return DecodeKey((*ttyInput)(t))
}

// ttyInput serves type-ahead bytes before reading the terminal.
type ttyInput TTY

func (in *ttyInput) ReadByte() (byte, error) {
	if len(in.pending) > 0 {
		b := in.pending[0]
		in.pending = in.pending[1:]
		return b, nil
	}
	return in.rd.ReadByte()
}

func (in *ttyInput) Buffered() int { return len(in.pending) + in.rd.Buffered() }

// Size returns the terminal width and height in cells.
func (t *TTY) Size() (cols, rows int, err error) {
	err = control(t.out, func(fd int) error {
		var gerr error
		cols, rows, gerr = term.GetSize(fd)
		return gerr
	})
	return cols, rows, err
}

// Release flushes pending output, restores the terminal state saved by New
// and closes the terminal if Open created it. It is safe to call twice.
func (t *TTY) Release() error {
	if t.closed {
		return nil
	}
	t.closed = true
	err := t.w.Flush()
	if t.state != nil {
		rerr := control(t.in, func(fd int) error { return term.Restore(fd, t.state) })
		err = errors.Join(err, rerr)
	}
	if t.owned {
		err = errors.Join(err, t.in.Close())
	}
	return err
}
