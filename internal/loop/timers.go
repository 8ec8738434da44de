package loop

import (
	"slices"
	"time"
)

// Timers holds deferred callbacks keyed by frame time. They run on the frame
// goroutine from Fire, so callbacks may touch client state freely.
type Timers struct {
	pending []timer
	nextID  int
}

type timer struct {
	id int
	at time.Duration
	fn func()
}

// After schedules fn to run at the first Fire with now >= at.
// It returns an id usable with Cancel.
func (t *Timers) After(at time.Duration, fn func()) int {
	t.nextID++
	t.pending = append(t.pending, timer{id: t.nextID, at: at, fn: fn})
	return t.nextID
}

// Cancel drops a pending timer. Unknown ids are ignored.
func (t *Timers) Cancel(id int) {
	t.pending = slices.DeleteFunc(t.pending, func(tm timer) bool { return tm.id == id })
}

// Fire runs every timer due at now, in scheduling order.
func (t *Timers) Fire(now time.Duration) {
	var due []timer
	t.pending = slices.DeleteFunc(t.pending, func(tm timer) bool {
		if tm.at <= now {
			due = append(due, tm)
			return true
		}
		return false
	})
	for _, tm := range due {
		tm.fn()
	}
}

// CancelAll drops every pending timer.
func (t *Timers) CancelAll() {
	t.pending = nil
}

// Len returns the number of pending timers.
func (t *Timers) Len() int {
	return len(t.pending)
}
