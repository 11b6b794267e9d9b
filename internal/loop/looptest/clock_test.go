package looptest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock_FiresInDueOrder(t *testing.T) {
	c := NewClock()
	var got []string

	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, c.Pending())
}

func TestClock_NowFollowsFiringTimer(t *testing.T) {
	c := NewClock()
	start := c.Now()

	var at time.Duration
	c.AfterFunc(15*time.Millisecond, func() { at = c.Now().Sub(start) })
	c.Advance(time.Second)

	assert.Equal(t, 15*time.Millisecond, at)
	assert.Equal(t, time.Second, c.Now().Sub(start))
}

func TestClock_EveryRepeatsAndStops(t *testing.T) {
	c := NewClock()
	n := 0
	ticker := c.Every(100*time.Millisecond, func() { n++ })

	c.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, n)

	ticker.Stop()
	c.Advance(time.Second)
	assert.Equal(t, 3, n)
}

func TestClock_TimerScheduledFromCallback(t *testing.T) {
	c := NewClock()
	var fired bool
	c.AfterFunc(10*time.Millisecond, func() {
		c.AfterFunc(10*time.Millisecond, func() { fired = true })
	})

	c.Advance(25 * time.Millisecond)
	assert.True(t, fired)
}

func TestClock_PostRunsOnFlush(t *testing.T) {
	c := NewClock()
	var got []int
	c.Post(func() {
		got = append(got, 1)
		c.Post(func() { got = append(got, 2) })
	})
	assert.Empty(t, got)

	c.Flush()
	assert.Equal(t, []int{1, 2}, got)
}
