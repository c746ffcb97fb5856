// Package timer provides an elapsed-time predicate for periodic game events.
package timer

import "time"

// Clock returns the current time. Tests substitute a fake.
type Clock func() time.Time

// Timer reports when a fixed duration has passed since it was created.
// A timer is never reset; callers replace it with a new one when it fires.
type Timer struct {
	Start    time.Time
	Duration time.Duration
	First    bool // Fires immediately (first run of a periodic event)
	now      Clock
}

// New creates a timer started now.
func New(d time.Duration, first bool) *Timer {
	return NewWithClock(d, first, time.Now)
}

// NewWithClock creates a timer that reads time from clock.
func NewWithClock(d time.Duration, first bool, clock Clock) *Timer {
	return &Timer{
		Start:    clock(),
		Duration: d,
		First:    first,
		now:      clock,
	}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.Start)
}

// Done returns true once at least Duration has elapsed, or right away for a
// first-run timer.
func (t *Timer) Done() bool {
	if t.First {
		return true
	}
	return t.Elapsed() >= t.Duration
}
