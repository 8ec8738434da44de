// Package sfx names the game's sound effects. It links no audio backend, so
// packages that only trigger sounds stay pure Go.
package sfx

// Effect names a sound effect.
type Effect int

const (
	Hit      Effect = iota // A meteor was destroyed
	Mismatch               // Typed text no meteor can complete
	Impact                 // A meteor reached the ground
	GameOver
)

func (e Effect) String() string {
	switch e {
	case Hit:
		return "hit"
	case Mismatch:
		return "mismatch"
	case Impact:
		return "impact"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Player plays effects. Implementations must not block the caller.
type Player interface {
	Play(effect Effect)
}

// Silent discards every effect.
type Silent struct{}

func (Silent) Play(Effect) {}
