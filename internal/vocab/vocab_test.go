package vocab

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseJSONValid(t *testing.T) {
	entries, err := ParseJSON([]byte(`[{"q":"Hello","a":"Hi"},{"q":"Apple","a":"蘋果","emoji":"🍎"}]`))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Glyph != PlaceholderGlyph {
		t.Errorf("missing emoji = %q, want placeholder %q", entries[0].Glyph, PlaceholderGlyph)
	}
	if entries[1].Glyph != "🍎" {
		t.Errorf("emoji = %q, want 🍎", entries[1].Glyph)
	}
	if entries[0].Key() != "hi" {
		t.Errorf("Key() = %q, want %q", entries[0].Key(), "hi")
	}
}

func TestParseJSONRejects(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr error
		field   string
	}{
		{name: "missing answer", payload: `[{"q":"Hello"}]`, field: "a"},
		{name: "missing prompt", payload: `[{"a":"Hi"}]`, field: "q"},
		{name: "blank answer", payload: `[{"q":"Hello","a":"Hi"},{"q":"x","a":"   "}]`, field: "a"},
		{name: "empty array", payload: `[]`, wantErr: ErrEmptyList},
		{name: "null", payload: `null`, wantErr: ErrEmptyList},
		{name: "object", payload: `{"q":"Hello","a":"Hi"}`, wantErr: ErrMalformed},
		{name: "not json", payload: `hello`, wantErr: ErrMalformed},
		{name: "wrong type", payload: `[{"q":1,"a":"Hi"}]`, wantErr: ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseJSON([]byte(tt.payload))
			if err == nil {
				t.Fatalf("expected error, got %d entries", len(entries))
			}
			if entries != nil {
				t.Errorf("entries should be nil on failure, got %v", entries)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.field != "" {
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("err = %v, want *ValidationError", err)
				}
				if verr.Field != tt.field {
					t.Errorf("field = %q, want %q", verr.Field, tt.field)
				}
			}
		})
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	data := "- q: Cat\n  a: cat\n  emoji: \"🐱\"\n- q: Dog\n  a: dog\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(entries) != 2 || entries[1].Answer != "dog" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[1].Glyph != PlaceholderGlyph {
		t.Errorf("glyph = %q, want placeholder", entries[1].Glyph)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHasTagIsSetMembership(t *testing.T) {
	tests := []struct {
		tag  string
		has  string
		want bool
	}{
		{"adj+adv", "adj", true},
		{"adj+adv", "adv", true},
		{"adj+adv", "ad", false},
		{"det+pron", "n", false},
		{"pron", "n", false},
		{"n+v", "v", true},
		{"", "n", false},
	}
	for _, tt := range tests {
		e := Entry{Tag: tt.tag}
		if got := e.HasTag(tt.has); got != tt.want {
			t.Errorf("Entry{Tag:%q}.HasTag(%q) = %v, want %v", tt.tag, tt.has, got, tt.want)
		}
	}
}

func TestWithTag(t *testing.T) {
	entries := []Entry{
		{Answer: "run", Tag: "n+v"},
		{Answer: "he", Tag: "pron"},
		{Answer: "cat", Tag: "n"},
		{Answer: "fast", Tag: "adj+adv"},
		{Answer: "plain"},
	}
	tests := []struct {
		tag  string
		want string
	}{
		{"n", "run,cat"},
		{" v ", "run"},
		{"adv", "fast"},
		{"ad", ""},
		{"", "run,he,cat,fast,plain"},
	}
	for _, tt := range tests {
		var got []string
		for _, e := range WithTag(entries, tt.tag) {
			got = append(got, e.Answer)
		}
		if strings.Join(got, ",") != tt.want {
			t.Errorf("WithTag(%q) = %v, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestDefaultVocabulary(t *testing.T) {
	entries := Default()
	if len(entries) != len(Words) || len(entries) == 0 {
		t.Fatalf("Default() returned %d entries, want %d", len(entries), len(Words))
	}
	for i, e := range entries {
		if e.Prompt == "" || e.Answer == "" || e.Glyph == "" {
			t.Errorf("entry %d incomplete: %+v", i, e)
		}
		if len(e.Tags()) == 0 {
			t.Errorf("entry %d (%s) has no tags", i, e.Answer)
		}
	}
}

func TestPoolSample(t *testing.T) {
	if _, err := NewPool(nil); !errors.Is(err, ErrEmptyList) {
		t.Fatalf("NewPool(nil) err = %v, want ErrEmptyList", err)
	}

	pool, err := NewPool([]Entry{{Prompt: "Hello", Answer: "Hi"}})
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		e, ok := pool.Sample(r)
		if !ok || e.Answer != "Hi" {
			t.Fatalf("Sample = %+v, %v", e, ok)
		}
	}

	var empty *Pool
	if _, ok := empty.Sample(r); ok {
		t.Error("Sample on nil pool should report false")
	}
}

func TestRomanizer(t *testing.T) {
	r := NewRomanizer()
	if got := r.Romanize("你好"); got != "nihao" {
		t.Errorf("Romanize(你好) = %q, want nihao", got)
	}
	if got := r.Romanize("hello"); got != "" {
		t.Errorf("Romanize(hello) = %q, want empty", got)
	}

	forms := r.Accepted(Entry{Answer: "你好"})
	if len(forms) != 2 || forms[0] != "你好" || forms[1] != "nihao" {
		t.Errorf("Accepted = %v", forms)
	}

	var none *Romanizer
	if forms := none.Accepted(Entry{Answer: " Cat "}); len(forms) != 1 || forms[0] != "cat" {
		t.Errorf("nil romanizer Accepted = %v", forms)
	}
}
