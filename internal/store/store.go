// Package store persists high scores, play statistics and word lists in a
// small key-value table.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tomz197/meteortype/internal/vocab"
)

// ErrNotFound is returned by KV.Get for a missing key.
var ErrNotFound = errors.New("key not found")

// Well-known keys.
const (
	KeyHighScore = "typing-highscore"
	KeyStats     = "movers-game-stats"
	KeyBestTotal = "movers-highscore"
	KeyWords     = "custom-words"
	KeyMissed    = "typing-missed"
)

// ModeTyping is the stats bucket of the meteor typing game.
const ModeTyping = "typing"

// Modes lists every stats bucket, in display order.
var Modes = []string{"memory", "spelling", "fillBlanks", "listening", "category", ModeTyping, "adventure"}

// KV is a string key-value store.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ModeStats counts games of one mode.
type ModeStats struct {
	Played    int `json:"played"`
	Completed int `json:"completed"`
}

// Stats maps a mode to its counters.
type Stats map[string]ModeStats

// DefaultStats returns zero counters for every mode.
func DefaultStats() Stats {
	s := make(Stats, len(Modes))
	for _, m := range Modes {
		s[m] = ModeStats{}
	}
	return s
}

// Store offers typed access to the game's persisted values.
// It is safe for concurrent use; read-modify-write updates are serialized.
type Store struct {
	kv KV
	mu sync.Mutex
}

// New wraps kv.
func New(kv KV) *Store {
	return &Store{kv: kv}
}

// Close closes the underlying KV.
func (s *Store) Close() error {
	return s.kv.Close()
}

// HighScore returns the stored high score. Missing or corrupt values read as 0.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	return s.getInt(ctx, KeyHighScore)
}

// RaiseHighScore stores score if it beats the stored high score and returns
// the resulting high score.
func (s *Store) RaiseHighScore(ctx context.Context, score int) (int, error) {
	return s.raise(ctx, KeyHighScore, score)
}

// BestTotal returns the best running score total across all games.
func (s *Store) BestTotal(ctx context.Context) (int, error) {
	return s.getInt(ctx, KeyBestTotal)
}

// RaiseBestTotal stores total if it beats the stored best total.
func (s *Store) RaiseBestTotal(ctx context.Context, total int) (int, error) {
	return s.raise(ctx, KeyBestTotal, total)
}

// Stats returns the play counters, filling in modes that were never stored.
// A corrupt record reads as defaults.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := DefaultStats()
	raw, err := s.kv.Get(ctx, KeyStats)
	if errors.Is(err, ErrNotFound) {
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}
	var stored Stats
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return stats, nil
	}
	for mode, st := range stored {
		stats[mode] = st
	}
	return stats, nil
}

// RecordPlayed increments the played counter of mode.
func (s *Store) RecordPlayed(ctx context.Context, mode string) error {
	return s.updateStats(ctx, mode, func(st *ModeStats) { st.Played++ })
}

// RecordCompleted increments the completed counter of mode.
func (s *Store) RecordCompleted(ctx context.Context, mode string) error {
	return s.updateStats(ctx, mode, func(st *ModeStats) { st.Completed++ })
}

// Words returns the custom word list, or ErrNotFound when none is stored.
func (s *Store) Words(ctx context.Context) ([]vocab.Entry, error) {
	return s.getEntries(ctx, KeyWords)
}

// SaveWords replaces the custom word list.
func (s *Store) SaveWords(ctx context.Context, entries []vocab.Entry) error {
	return s.putEntries(ctx, KeyWords, entries)
}

// ClearWords removes the custom word list so the built-in vocabulary is used.
func (s *Store) ClearWords(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyWords); err != nil {
		return fmt.Errorf("clearing word list: %w", err)
	}
	return nil
}

// Missed returns the words missed in the latest finished game.
// An empty list is returned when nothing was stored.
func (s *Store) Missed(ctx context.Context) ([]vocab.Entry, error) {
	entries, err := s.getEntries(ctx, KeyMissed)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return entries, err
}

// SaveMissed replaces the missed word list.
func (s *Store) SaveMissed(ctx context.Context, entries []vocab.Entry) error {
	return s.putEntries(ctx, KeyMissed, entries)
}

func (s *Store) getInt(ctx context.Context, key string) (int, error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", key, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, nil
	}
	return n, nil
}

func (s *Store) raise(ctx context.Context, key string, value int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getInt(ctx, key)
	if err != nil {
		return 0, err
	}
	if value <= current {
		return current, nil
	}
	if err := s.kv.Put(ctx, key, strconv.Itoa(value)); err != nil {
		return current, fmt.Errorf("writing %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) updateStats(ctx context.Context, mode string, fn func(*ModeStats)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.Stats(ctx)
	if err != nil {
		return err
	}
	st := stats[mode]
	fn(&st)
	stats[mode] = st

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding stats: %w", err)
	}
	if err := s.kv.Put(ctx, KeyStats, string(data)); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

func (s *Store) getEntries(ctx context.Context, key string) ([]vocab.Entry, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var entries []vocab.Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}
	return entries, nil
}

func (s *Store) putEntries(ctx context.Context, key string, entries []vocab.Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
