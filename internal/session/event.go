package session

import "github.com/tomz197/meteortype/internal/vocab"

// EventKind identifies what happened in a transition.
type EventKind int

const (
	EventHit       EventKind = iota // A meteor was typed; X, Y, Points, Word
	EventScore                      // Score changed; Points is the delta, Value the new score
	EventHealth                     // Value is the remaining health
	EventLevel                      // Value is the new level
	EventHighScore                  // Value is the new high score, persist it
	EventMissed                     // Word was added to the missed list
	EventGameOver                   // Value is the final score
	EventReset
	EventImported // Value is the new pool size
)

var eventNames = map[EventKind]string{
	EventHit:       "hit",
	EventScore:     "score",
	EventHealth:    "health",
	EventLevel:     "level",
	EventHighScore: "highscore",
	EventMissed:    "missed",
	EventGameOver:  "gameover",
	EventReset:     "reset",
	EventImported:  "imported",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is an outbound notification for the host UI and collaborators.
type Event struct {
	Kind   EventKind
	Points int
	Value  int
	Word   vocab.Entry
	X, Y   float64
}
