// Package looptest provides a deterministic, manually advanced scheduler for tests.
package looptest

import (
	"sync"
	"time"

	"github.com/jmylchreest/cliptoast/internal/loop"
)

// Clock is a loop.Scheduler whose time only moves when Advance is called.
// Callbacks run synchronously on the goroutine calling Advance or Flush,
// ordered by due time and then by scheduling order.
type Clock struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*timer
	posted []func()
}

var _ loop.Scheduler = (*Clock)(nil)

type timer struct {
	clock   *Clock
	due     time.Time
	period  time.Duration
	seq     uint64
	fn      func()
	stopped bool
}

func (t *timer) Stop() {
	t.clock.mu.Lock()
	t.stopped = true
	t.clock.mu.Unlock()
}

// NewClock returns a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Post queues fn; it runs on the next Flush or Advance.
func (c *Clock) Post(fn func()) {
	c.mu.Lock()
	c.posted = append(c.posted, fn)
	c.mu.Unlock()
}

// AfterFunc schedules fn once at Now()+d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) loop.Timer {
	return c.schedule(d, 0, fn)
}

// Every schedules fn at Now()+d and every d after that.
func (c *Clock) Every(d time.Duration, fn func()) loop.Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return c.schedule(d, d, fn)
}

func (c *Clock) schedule(d, period time.Duration, fn func()) *timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	if d < 0 {
		d = 0
	}
	c.seq++
	t := &timer{
		clock:  c,
		due:    c.now.Add(d),
		period: period,
		seq:    c.seq,
		fn:     fn,
	}
	c.timers = append(c.timers, t)
	return t
}

// Flush runs every posted function, including ones posted while flushing.
func (c *Clock) Flush() {
	for {
		c.mu.Lock()
		batch := c.posted
		c.posted = nil
		c.mu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// Advance moves time forward by d, firing every timer that comes due on the way.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	end := c.now.Add(d)
	c.mu.Unlock()

	c.Flush()
	for {
		t := c.popDue(end)
		if t == nil {
			break
		}
		t.fn()
		c.Flush()
	}

	c.mu.Lock()
	c.now = end
	c.mu.Unlock()
}

// popDue returns the earliest live timer due at or before end, advancing the
// clock to its due time and re-arming it if it repeats.
func (c *Clock) popDue(end time.Time) *timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.timers[:0]
	var next *timer
	for _, t := range c.timers {
		if t.stopped {
			continue
		}
		live = append(live, t)
		if t.due.After(end) {
			continue
		}
		if next == nil || t.due.Before(next.due) || (t.due.Equal(next.due) && t.seq < next.seq) {
			next = t
		}
	}
	c.timers = live
	if next == nil {
		return nil
	}

	c.now = next.due
	if next.period > 0 {
		c.seq++
		next.seq = c.seq
		next.due = next.due.Add(next.period)
	} else {
		next.stopped = true
	}
	return next
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *Clock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}
