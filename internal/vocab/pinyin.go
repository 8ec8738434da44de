package vocab

import (
	"strings"
	"unicode"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Romanizer turns Han answers into toneless pinyin so they can be typed
// on a keyboard without an input method.
type Romanizer struct {
	args gopinyin.Args
}

// NewRomanizer creates a romanizer using the first reading of each character.
func NewRomanizer() *Romanizer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Normal // No tone marks: zhong
	args.Fallback = func(r rune, _ gopinyin.Args) []string {
		return []string{string(r)}
	}
	return &Romanizer{args: args}
}

// Romanize returns the pinyin form of s with syllables joined and non-Han
// characters kept, or "" when s contains no Han characters.
func (r *Romanizer) Romanize(s string) string {
	if !containsHan(s) {
		return ""
	}
	var b strings.Builder
	for _, readings := range gopinyin.Pinyin(s, r.args) {
		if len(readings) > 0 {
			b.WriteString(readings[0])
		}
	}
	return Normalize(b.String())
}

// Accepted returns every typed form that counts as the entry's answer.
// The normalized answer always comes first.
func (r *Romanizer) Accepted(e Entry) []string {
	forms := []string{e.Key()}
	if r == nil {
		return forms
	}
	if alias := r.Romanize(e.Answer); alias != "" && alias != forms[0] {
		forms = append(forms, alias)
	}
	return forms
}

func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
