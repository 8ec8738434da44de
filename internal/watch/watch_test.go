package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewFile(path, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`[{"q":"a","a":"b"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if filepath.Base(got) != "words.json" {
			t.Errorf("event for %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event for write")
	}
}

func TestCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	w, err := NewFile(path, DefaultDebounce)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Error("Events should be closed")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("Errors should be closed")
	}
}

func TestNewFileMissingDir(t *testing.T) {
	if _, err := NewFile(filepath.Join(t.TempDir(), "nope", "words.json"), DefaultDebounce); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
