package display

import (
	"time"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"

	"github.com/jmylchreest/cliptoast/internal/loop"
)

// Scheduler is a loop.Scheduler that runs callbacks on the GLib main loop.
// Post is safe from any goroutine; timers must be created and stopped on the
// main loop.
type Scheduler struct{}

var _ loop.Scheduler = Scheduler{}

// Post runs fn on the next idle iteration of the main loop.
func (Scheduler) Post(fn func()) {
	coreglib.IdleAdd(func() bool {
		fn()
		return false
	})
}

// Now returns the wall clock time.
func (Scheduler) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn once after d.
func (Scheduler) AfterFunc(d time.Duration, fn func()) loop.Timer {
	t := &sourceTimer{}
	t.handle = coreglib.TimeoutAdd(millis(d), func() bool {
		if t.stopped {
			return false
		}
		t.stopped = true
		fn()
		return false
	})
	return t
}

// Every runs fn every d until stopped.
func (Scheduler) Every(d time.Duration, fn func()) loop.Timer {
	t := &sourceTimer{}
	t.handle = coreglib.TimeoutAdd(millis(d), func() bool {
		if t.stopped {
			return false
		}
		t.dispatching = true
		fn()
		t.dispatching = false
		return !t.stopped
	})
	return t
}

type sourceTimer struct {
	handle      coreglib.SourceHandle
	stopped     bool
	dispatching bool
}

// Stop removes the GLib source. Stopping from inside the callback lets the
// callback's return value remove it instead.
func (t *sourceTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	if !t.dispatching {
		coreglib.SourceRemove(t.handle)
	}
}

func millis(d time.Duration) uint {
	if d <= 0 {
		return 0
	}
	ms := d.Milliseconds()
	if ms == 0 {
		ms = 1
	}
	return uint(ms)
}
