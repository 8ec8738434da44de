package loop

import (
	"time"

	"github.com/tomz197/meteortype/internal/session"
)

// clientState is the screen the client shows.
type clientState int

const (
	stateStart    clientState = iota // Title screen, stars drifting
	statePlaying                     // Active round
	stateGameOver                    // Final score and missed words
	stateShutdown                    // Server is shutting down
)

// frameState is per-frame bookkeeping owned by the Client.
type frameState struct {
	now       time.Duration // Elapsed time handed in by the scheduler
	delta     time.Duration
	frame     int
	running   bool
	stepping  bool // False once the game reported the round is over
	prevState clientState

	shuttingDown  bool
	shutdownTimer float64 // Seconds left before auto-disconnect
	isInactive    bool
	wasInactive   bool

	mismatch      bool // Input line flashes red
	mismatchTimer int
}

func newFrameState() frameState {
	return frameState{running: true, stepping: true, prevState: -1}
}

func stateFor(phase session.Phase, shuttingDown bool) clientState {
	if shuttingDown {
		return stateShutdown
	}
	switch phase {
	case session.Playing:
		return statePlaying
	case session.GameOver:
		return stateGameOver
	default:
		return stateStart
	}
}
