// Package input turns raw terminal bytes into key presses for a typing game.
package input

import (
	"bufio"
	"unicode/utf8"
)

// KeyType classifies a key press.
type KeyType int

const (
	KeyRune      KeyType = iota // Printable character in Key.Rune
	KeyEnter                    // Enter / Return
	KeyBackspace                // Backspace or DEL
	KeyTab
	KeyEscape
	KeyCtrlC
	KeyClearLine // Ctrl-U
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEOF // The input stream ended
)

// Key is one decoded key press.
type Key struct {
	Type KeyType
	Rune rune
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch      chan byte
	pending []byte // Incomplete UTF-8 sequence carried over to the next read
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine ends when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadKeys drains all available bytes from the stream without blocking and
// decodes them. After the underlying reader fails a single KeyEOF is returned
// on every call.
func ReadKeys(s *Stream) []Key {
	if s.closed {
		return []Key{{Type: KeyEOF}}
	}

	buf := s.pending
	s.pending = nil
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := Decode(buf)
	if len(rest) > 0 {
		s.pending = append([]byte(nil), rest...)
	}
	if s.closed {
		keys = append(keys, Key{Type: KeyEOF})
	}
	return keys
}

// Decode parses buf into keys. A trailing incomplete UTF-8 sequence is
// returned as rest so it can be completed by later bytes.
func Decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == '\x1b':
			key, n := decodeEscape(buf[i:])
			if n > 0 {
				if key.Type != KeyRune {
					keys = append(keys, key)
				}
				i += n
				continue
			}
			keys = append(keys, Key{Type: KeyEscape})
			i++
		case b == '\r' || b == '\n':
			keys = append(keys, Key{Type: KeyEnter})
			// Treat CRLF as one Enter.
			if b == '\r' && i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			i++
		case b == '\x7f' || b == '\b':
			keys = append(keys, Key{Type: KeyBackspace})
			i++
		case b == '\t':
			keys = append(keys, Key{Type: KeyTab})
			i++
		case b == '\x03':
			keys = append(keys, Key{Type: KeyCtrlC})
			i++
		case b == '\x15':
			keys = append(keys, Key{Type: KeyClearLine})
			i++
		case b < 0x20:
			i++ // Other control bytes are ignored
		case b < utf8.RuneSelf:
			keys = append(keys, Key{Type: KeyRune, Rune: rune(b)})
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				return keys, buf[i:]
			}
			r, size := utf8.DecodeRune(buf[i:])
			if r != utf8.RuneError {
				keys = append(keys, Key{Type: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return keys, nil
}

// decodeEscape parses a CSI (ESC [) or SS3 (ESC O) sequence at the start of
// buf. It returns the consumed length, or 0 when buf holds a lone escape.
// Unknown sequences are swallowed and reported as a zero KeyRune key.
func decodeEscape(buf []byte) (Key, int) {
	if len(buf) < 3 || (buf[1] != '[' && buf[1] != 'O') {
		return Key{}, 0
	}
	for j := 2; j < len(buf); j++ {
		c := buf[j]
		if c < 0x40 || c > 0x7e {
			continue
		}
		switch c {
		case 'A':
			return Key{Type: KeyUp}, j + 1
		case 'B':
			return Key{Type: KeyDown}, j + 1
		case 'C':
			return Key{Type: KeyRight}, j + 1
		case 'D':
			return Key{Type: KeyLeft}, j + 1
		default:
			return Key{Type: KeyRune}, j + 1
		}
	}
	return Key{Type: KeyRune}, len(buf)
}
