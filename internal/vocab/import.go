package vocab

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyList is returned when an imported list has no entries.
	ErrEmptyList = errors.New("word list is empty")
	// ErrMalformed is returned when the payload is not a list of word objects.
	ErrMalformed = errors.New("word list is malformed")
)

// ValidationError reports an entry that is missing a required field.
type ValidationError struct {
	Index int    // Zero-based position in the list
	Field string // "q" or "a"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %d: field %q is required", e.Index+1, e.Field)
}

// Format is the encoding of an imported word list.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the encoding from a file extension. Unknown extensions are JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseJSON parses an array of {"q", "a", "emoji"} objects.
func ParseJSON(data []byte) ([]Entry, error) {
	return Parse(data, FormatJSON)
}

// Parse decodes a word list and validates it with Validate.
func Parse(data []byte, format Format) ([]Entry, error) {
	var raw []Entry
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return Validate(raw)
}

// Validate checks a decoded word list and fills in missing glyphs. Nothing is
// returned unless every entry has a non-blank "q" and "a".
func Validate(raw []Entry) ([]Entry, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyList
	}

	entries := make([]Entry, 0, len(raw))
	for i, e := range raw {
		if strings.TrimSpace(e.Prompt) == "" {
			return nil, &ValidationError{Index: i, Field: "q"}
		}
		if strings.TrimSpace(e.Answer) == "" {
			return nil, &ValidationError{Index: i, Field: "a"}
		}
		if e.Glyph == "" {
			e.Glyph = PlaceholderGlyph
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadFile reads and parses a word list file, JSON or YAML by extension.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	entries, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return entries, nil
}
