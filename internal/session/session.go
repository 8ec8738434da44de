// Package session holds the score, health and level bookkeeping of one
// meteor typing game. State is a value: every transition returns the next
// State together with the events the host should react to.
package session

import (
	"slices"

	"github.com/tomz197/meteortype/internal/vocab"
)

// Phase is the coarse state of a session.
type Phase int

const (
	Ready Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Playing:
		return "playing"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Rules are the fixed numbers of the damage and scoring model.
type Rules struct {
	MaxHealth int
	Damage    int // Health lost per boundary arrival
	HitPoints int // Score gained per typed word
	LevelStep int // Score per level
}

// DefaultRules returns the classic rules: 100 health, 10 damage, 10 points, a level every 100.
func DefaultRules() Rules {
	return Rules{MaxHealth: 100, Damage: 10, HitPoints: 10, LevelStep: 100}
}

// State is a snapshot of one session. The zero value is not usable; call New.
type State struct {
	Phase     Phase
	Health    int
	Score     int
	HighScore int // Best score ever, survives Reset
	Level     int
	Pool      *vocab.Pool
	Missed    []vocab.Entry // Unique by Entry.Key, shared between snapshots; never mutated in place

	rules Rules
}

// New creates a Ready session.
func New(rules Rules, highScore int, pool *vocab.Pool) State {
	return State{
		Phase:     Ready,
		Health:    rules.MaxHealth,
		Level:     1,
		HighScore: max(highScore, 0),
		Pool:      pool,
		rules:     rules,
	}
}

// Rules returns the rules the session was created with.
func (s State) Rules() Rules {
	return s.rules
}

// Over reports whether the session has ended.
func (s State) Over() bool {
	return s.Phase == GameOver
}

// Start begins play with fresh counters. Starting a running game restarts it.
func (s State) Start() (State, []Event) {
	next := s.fresh()
	next.Phase = Playing
	return next, []Event{{Kind: EventReset}, healthEvent(next), {Kind: EventLevel, Value: next.Level}}
}

// Reset returns to Ready with fresh counters, keeping the pool and high score.
func (s State) Reset() (State, []Event) {
	next := s.fresh()
	next.Phase = Ready
	return next, []Event{{Kind: EventReset}, healthEvent(next), {Kind: EventLevel, Value: next.Level}}
}

// Import replaces the word pool and resets to Ready.
func (s State) Import(pool *vocab.Pool) (State, []Event) {
	s.Pool = pool
	next, events := s.Reset()
	return next, append([]Event{{Kind: EventImported, Value: pool.Len()}}, events...)
}

// Hit credits one typed word. Ignored unless Playing.
func (s State) Hit(x, y float64, word vocab.Entry) (State, []Event) {
	if s.Phase != Playing {
		return s, nil
	}
	points := s.rules.HitPoints
	old := s.Score
	s.Score += points

	events := []Event{
		{Kind: EventHit, Points: points, X: x, Y: y, Word: word},
		{Kind: EventScore, Points: points, Value: s.Score},
	}
	if step := s.rules.LevelStep; step > 0 {
		if crossed := s.Score/step - old/step; crossed > 0 {
			s.Level += crossed
			events = append(events, Event{Kind: EventLevel, Value: s.Level})
		}
	}
	if s.Score > s.HighScore {
		s.HighScore = s.Score
		events = append(events, Event{Kind: EventHighScore, Value: s.HighScore})
	}
	return s, events
}

// BoundaryArrival records a meteor that reached the ground: the word is
// remembered as missed and health drops. Health reaching zero ends the session.
func (s State) BoundaryArrival(word vocab.Entry) (State, []Event) {
	if s.Phase != Playing {
		return s, nil
	}
	var events []Event
	if !s.hasMissed(word) {
		// Copy so earlier snapshots keep their own list.
		s.Missed = append(slices.Clip(s.Missed), word)
		events = append(events, Event{Kind: EventMissed, Word: word, Value: len(s.Missed)})
	}

	s.Health = max(s.Health-s.rules.Damage, 0)
	events = append(events, healthEvent(s))
	if s.Health == 0 {
		s.Phase = GameOver
		events = append(events, Event{Kind: EventGameOver, Value: s.Score})
	}
	return s, events
}

func (s State) hasMissed(word vocab.Entry) bool {
	key := word.Key()
	return slices.ContainsFunc(s.Missed, func(e vocab.Entry) bool {
		return e.Key() == key
	})
}

func (s State) fresh() State {
	s.Health = s.rules.MaxHealth
	s.Score = 0
	s.Level = 1
	s.Missed = nil
	return s
}

func healthEvent(s State) Event {
	return Event{Kind: EventHealth, Value: s.Health}
}
