package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

func types(keys []Key) []KeyType {
	out := make([]KeyType, len(keys))
	for i, k := range keys {
		out[i] = k.Type
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  []KeyType
		runes string
	}{
		{"ascii", "cat", []KeyType{KeyRune, KeyRune, KeyRune}, "cat"},
		{"utf8", "貓é", []KeyType{KeyRune, KeyRune}, "貓é"},
		{"enter crlf", "a\r\n", []KeyType{KeyRune, KeyEnter}, "a"},
		{"backspace", "a\x7f\b", []KeyType{KeyRune, KeyBackspace, KeyBackspace}, "a"},
		{"arrows", "\x1b[A\x1b[B\x1bOC\x1b[D", []KeyType{KeyUp, KeyDown, KeyRight, KeyLeft}, ""},
		{"lone escape", "\x1b", []KeyType{KeyEscape}, ""},
		{"escape then text", "\x1bx", []KeyType{KeyEscape, KeyRune}, "x"},
		{"unknown csi swallowed", "\x1b[3~z", []KeyType{KeyRune}, "z"},
		{"controls", "\t\x03\x15\x01", []KeyType{KeyTab, KeyCtrlC, KeyClearLine}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, rest := Decode([]byte(tt.in))
			if len(rest) != 0 {
				t.Fatalf("rest = %q", rest)
			}
			got := types(keys)
			if len(got) != len(tt.want) {
				t.Fatalf("types = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("types = %v, want %v", got, tt.want)
				}
			}
			var runes []rune
			for _, k := range keys {
				if k.Type == KeyRune {
					runes = append(runes, k.Rune)
				}
			}
			if string(runes) != tt.runes {
				t.Errorf("runes = %q, want %q", string(runes), tt.runes)
			}
		})
	}
}

func TestDecodeSplitRune(t *testing.T) {
	full := []byte("貓")
	keys, rest := Decode(full[:2])
	if len(keys) != 0 || len(rest) != 2 {
		t.Fatalf("partial decode = %v, rest %q", keys, rest)
	}
	keys, rest = Decode(append(rest, full[2:]...))
	if len(keys) != 1 || keys[0].Rune != '貓' || len(rest) != 0 {
		t.Fatalf("completed decode = %v, rest %q", keys, rest)
	}
}

func TestReadKeysUntilEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("hi\r")))

	var got []Key
	deadline := time.After(2 * time.Second)
	for {
		keys := ReadKeys(s)
		got = append(got, keys...)
		if len(keys) > 0 && keys[len(keys)-1].Type == KeyEOF {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("no EOF, got %v", got)
		case <-time.After(time.Millisecond):
		}
	}
	want := []KeyType{KeyRune, KeyRune, KeyEnter, KeyEOF}
	if gt := types(got); len(gt) != len(want) {
		t.Fatalf("keys = %v, want %v", gt, want)
	}
	if keys := ReadKeys(s); len(keys) != 1 || keys[0].Type != KeyEOF {
		t.Errorf("after EOF = %v", keys)
	}
}

func TestReadKeysBlockedReaderReturnsEmpty(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := StartStream(bufio.NewReader(pr))
	if keys := ReadKeys(s); len(keys) != 0 {
		t.Errorf("keys = %v, want none", keys)
	}
}

func TestLine(t *testing.T) {
	l := Line{Max: 4}
	for _, k := range []Key{{Type: KeyRune, Rune: 'c'}, {Type: KeyRune, Rune: '貓'}, {Type: KeyRune, Rune: '\x07'}} {
		l.Apply(k)
	}
	if l.String() != "c貓" {
		t.Fatalf("line = %q", l.String())
	}
	l.Apply(Key{Type: KeyBackspace})
	if l.String() != "c" {
		t.Fatalf("after backspace = %q", l.String())
	}
	for _, r := range "abcdef" {
		l.Insert(r)
	}
	if l.Len() != 4 {
		t.Errorf("Len = %d, want capped at 4", l.Len())
	}
	if !l.Apply(Key{Type: KeyClearLine}) || l.Len() != 0 {
		t.Error("clear line failed")
	}
	if l.Backspace() {
		t.Error("backspace on empty line should report false")
	}
}
