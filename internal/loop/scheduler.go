package loop

import "time"

// Timer is a handle to a scheduled callback.
// Stop is idempotent and may be called after the timer already fired.
type Timer interface {
	Stop()
}

// Poster hands a function over to the loop goroutine.
// Post never blocks and is safe to call from any goroutine.
type Poster interface {
	Post(fn func())
}

// Scheduler provides one-shot and repeating timers whose callbacks run on the loop.
// A callback that was already queued when Stop is called is dropped.
type Scheduler interface {
	Poster

	// Now returns the scheduler's notion of the current time.
	Now() time.Time

	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer

	// Every runs fn every d until stopped.
	Every(d time.Duration, fn func()) Timer
}

// StopTimer stops t if it is non-nil. Stopping an absent timer is a no-op.
func StopTimer(t Timer) {
	if t != nil {
		t.Stop()
	}
}
