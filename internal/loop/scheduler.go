// Package loop hosts a game in a terminal: it schedules frames, feeds key
// presses to the matcher, draws the world and the HUD, and forwards session
// events to persistence, narration and sound.
package loop

import (
	"context"
	"time"
)

// StepFunc advances a simulation to now, the time elapsed since scheduling
// began, and reports whether it wants another frame.
type StepFunc func(now time.Duration) bool

// Scheduler invokes a StepFunc once per frame until the step declines or the
// context is cancelled. Frames that overrun simply start late; the step gets
// the real elapsed time so it never depends on a tick counter.
type Scheduler struct {
	Interval time.Duration
	Now      func() time.Time // Defaults to time.Now
}

// NewScheduler returns a scheduler targeting the given frame interval.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{Interval: interval, Now: time.Now}
}

// Run blocks until step returns false (nil error) or ctx is done (ctx.Err()).
func (s *Scheduler) Run(ctx context.Context, step StepFunc) error {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	start := now()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		frameStart := now()
		if !step(frameStart.Sub(start)) {
			return nil
		}

		// Sleep for the remainder of the frame
		wait := s.Interval - now().Sub(frameStart)
		timer.Reset(max(wait, 0))
	}
}
