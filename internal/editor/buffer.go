package editor

// Buffer is the in-progress text of one editing session together with a
// 1-based cursor column. The column always stays within [1, Len()+1].
type Buffer struct {
	text []byte
	col  int
}

// NewBuffer returns an empty buffer with the cursor at column 1.
func NewBuffer() *Buffer { return &Buffer{col: 1} }

func (b *Buffer) String() string { return string(b.text) }

func (b *Buffer) Len() int { return len(b.text) }

// Col returns the cursor column.
func (b *Buffer) Col() int { return b.col }

// SetCol moves the cursor, clamping into range. The terminal may report a
// column past the text (wrapped lines, a prompt on the same row) and the
// buffer must never index outside itself.
func (b *Buffer) SetCol(col int) {
	switch {
	case col < 1:
		b.col = 1
	case col > len(b.text)+1:
		b.col = len(b.text) + 1
	default:
		b.col = col
	}
}

// Insert places c at the cursor and advances it.
func (b *Buffer) Insert(c byte) {
	i := b.col - 1
	b.text = append(b.text, 0)
	copy(b.text[i+1:], b.text[i:])
	b.text[i] = c
	b.col++
}

// DeleteBefore removes the byte left of the cursor. It reports false and
// leaves the buffer untouched when the cursor is at column 1.
func (b *Buffer) DeleteBefore() bool {
	if b.col <= 1 {
		return false
	}
	b.col--
	i := b.col - 1
	b.text = append(b.text[:i], b.text[i+1:]...)
	return true
}
