package terminal

import (
	"io"
	"unicode/utf8"
)

// KeyType identifies the kind of key event.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyEnter
	KeyEscape
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyBackspace
	KeyCtrlC
	KeyOther
)

var keyNames = map[KeyType]string{
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyBackspace: "backspace",
	KeyCtrlC:     "ctrl+c",
	KeyOther:     "other",
}

func (t KeyType) String() string {
	if s, ok := keyNames[t]; ok {
		return s
	}
	return "unknown"
}

// Key is a single decoded key press. Bytes holds the raw input that produced
// it; for KeyRune it is the encoding of Rune, or the offending bytes when the
// input was not valid UTF-8 (Rune is then utf8.RuneError).
type Key struct {
	Type  KeyType
	Rune  rune
	Bytes []byte
}

// Rune returns a printable key event for r.
func Rune(r rune) Key {
	return Key{Type: KeyRune, Rune: r, Bytes: []byte(string(r))}
}

// Special returns a non-printable key event of type t.
func Special(t KeyType) Key { return Key{Type: t} }

func (k Key) String() string {
	if k.Type == KeyRune {
		return string(k.Rune)
	}
	return k.Type.String()
}

// KeySource yields key events one at a time. It returns io.EOF once the
// underlying input is exhausted.
type KeySource interface {
	ReadKey() (Key, error)
}

// Keys is a slice-backed KeySource, mostly useful for scripted input.
type Keys []Key

// ReadKey pops the next key.
func (k *Keys) ReadKey() (Key, error) {
	if len(*k) == 0 {
		return Key{}, io.EOF
	}
	key := (*k)[0]
	*k = (*k)[1:]
	return key, nil
}

// ByteReader is what DecodeKey needs from its input. Buffered reports how many
// bytes can be read without blocking; a lone ESC with nothing behind it is
// the Escape key rather than the start of a sequence. *bufio.Reader satisfies
// it.
type ByteReader interface {
	ReadByte() (byte, error)
	Buffered() int
}

const esc = 0x1b

// DecodeKey reads exactly one key event from r.
func DecodeKey(r ByteReader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch {
	case b == esc:
		if r.Buffered() == 0 {
			return Key{Type: KeyEscape, Bytes: []byte{b}}, nil
		}
		return decodeEscape(r)
	case b == '\r' || b == '\n':
		return Key{Type: KeyEnter, Bytes: []byte{b}}, nil
	case b == 0x7f || b == 0x08:
		return Key{Type: KeyBackspace, Bytes: []byte{b}}, nil
	case b == 0x03:
		return Key{Type: KeyCtrlC, Bytes: []byte{b}}, nil
	case b < 0x20:
		return Key{Type: KeyOther, Bytes: []byte{b}}, nil
	case b < utf8.RuneSelf:
		return Key{Type: KeyRune, Rune: rune(b), Bytes: []byte{b}}, nil
	}
	return decodeUTF8(r, b), nil
}

func decodeEscape(r ByteReader) (Key, error) {
	seq := []byte{esc}
	b, err := r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	seq = append(seq, b)
	if b != '[' && b != 'O' {
		// Alt+key and friends.
		return Key{Type: KeyOther, Bytes: seq}, nil
	}
	for {
		if r.Buffered() == 0 {
			return Key{Type: KeyOther, Bytes: seq}, nil
		}
		b, err = r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		seq = append(seq, b)
		// Parameter and intermediate bytes continue the sequence; anything in
		// 0x40-0x7e terminates it.
		if b >= 0x40 && b <= 0x7e {
			break
		}
	}
	if len(seq) == 3 {
		switch b {
		case 'A':
			return Key{Type: KeyUp, Bytes: seq}, nil
		case 'B':
			return Key{Type: KeyDown, Bytes: seq}, nil
		case 'C':
			return Key{Type: KeyRight, Bytes: seq}, nil
		case 'D':
			return Key{Type: KeyLeft, Bytes: seq}, nil
		}
	}
	return Key{Type: KeyOther, Bytes: seq}, nil
}

func decodeUTF8(r ByteReader, lead byte) Key {
	seq := []byte{lead}
	var want int
	switch {
	case lead&0xe0 == 0xc0:
		want = 2
	case lead&0xf0 == 0xe0:
		want = 3
	case lead&0xf8 == 0xf0:
		want = 4
	default:
		return Key{Type: KeyRune, Rune: utf8.RuneError, Bytes: seq}
	}
	for len(seq) < want && r.Buffered() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			break
		}
		seq = append(seq, b)
	}
	ru, size := utf8.DecodeRune(seq)
	if ru == utf8.RuneError || size != len(seq) {
		return Key{Type: KeyRune, Rune: utf8.RuneError, Bytes: seq}
	}
	return Key{Type: KeyRune, Rune: ru, Bytes: seq}
}
