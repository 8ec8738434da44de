// Package vocab holds the word lists the games draw from: the built-in
// vocabulary table and user supplied replacement lists.
package vocab

import (
	"math/rand"
	"slices"
	"strings"
)

// PlaceholderGlyph is shown for imported entries that carry no emoji.
const PlaceholderGlyph = "☄️"

// Entry is a single word the player has to type.
type Entry struct {
	Prompt string `json:"q" yaml:"q"`                   // Text shown on the meteor in original mode
	Answer string `json:"a" yaml:"a"`                   // Text the player must type
	Glyph  string `json:"emoji,omitempty" yaml:"emoji"` // Emoji drawn next to the label
	Tag    string `json:"key,omitempty" yaml:"key"`     // Grammatical tag, "+" separated (e.g. "adj+adv")
}

// Key returns the normalized answer used for matching and deduplication.
func (e Entry) Key() string {
	return Normalize(e.Answer)
}

// Tags splits the compound grammatical tag into its parts.
func (e Entry) Tags() []string {
	if e.Tag == "" {
		return nil
	}
	parts := strings.Split(e.Tag, "+")
	tags := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// HasTag reports whether tag is one of the entry's tags.
// Membership is exact: "n" does not match "pron".
func (e Entry) HasTag(tag string) bool {
	return slices.Contains(e.Tags(), tag)
}

// WithTag returns the entries that carry tag. An empty tag keeps them all.
func WithTag(entries []Entry, tag string) []Entry {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return entries
	}
	var kept []Entry
	for _, e := range entries {
		if e.HasTag(tag) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Normalize trims surrounding whitespace and lowercases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Pool is the active set of entries eligible for spawning.
// It is never empty.
type Pool struct {
	entries []Entry
}

// NewPool creates a pool from entries. The slice is copied.
func NewPool(entries []Entry) (*Pool, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyList
	}
	return &Pool{entries: slices.Clone(entries)}, nil
}

// DefaultPool returns a pool over the built-in vocabulary.
func DefaultPool() *Pool {
	return &Pool{entries: Default()}
}

// Len returns the number of entries in the pool.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Entries returns a copy of the pool's entries.
func (p *Pool) Entries() []Entry {
	if p == nil {
		return nil
	}
	return slices.Clone(p.entries)
}

// Sample draws one entry uniformly at random. Repeats across draws are allowed.
// Returns false only for an empty pool.
func (p *Pool) Sample(r *rand.Rand) (Entry, bool) {
	if p.Len() == 0 {
		return Entry{}, false
	}
	return p.entries[r.Intn(len(p.entries))], true
}
