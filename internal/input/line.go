package input

import "unicode"

// Line is an editable single-line text buffer.
type Line struct {
	runes []rune
	Max   int // Maximum length in runes; zero means unlimited
}

// Insert appends r. Control characters and overflow are ignored.
func (l *Line) Insert(r rune) bool {
	if !unicode.IsPrint(r) {
		return false
	}
	if l.Max > 0 && len(l.runes) >= l.Max {
		return false
	}
	l.runes = append(l.runes, r)
	return true
}

// Backspace removes the last rune.
func (l *Line) Backspace() bool {
	if len(l.runes) == 0 {
		return false
	}
	l.runes = l.runes[:len(l.runes)-1]
	return true
}

// Clear empties the buffer.
func (l *Line) Clear() {
	l.runes = l.runes[:0]
}

// Len returns the length in runes.
func (l *Line) Len() int {
	return len(l.runes)
}

func (l *Line) String() string {
	return string(l.runes)
}

// Apply edits the line for k and reports whether the text changed.
func (l *Line) Apply(k Key) bool {
	switch k.Type {
	case KeyRune:
		return l.Insert(k.Rune)
	case KeyBackspace:
		return l.Backspace()
	case KeyClearLine:
		changed := l.Len() > 0
		l.Clear()
		return changed
	}
	return false
}
