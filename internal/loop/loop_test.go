package loop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startLoop(t *testing.T) *Loop {
	t.Helper()
	l := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l
}

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := startLoop(t)

	var (
		mu  sync.Mutex
		got []int
	)
	finished := make(chan struct{})
	for i := range 5 {
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			if i == 4 {
				close(finished)
			}
		})
	}

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("posted functions did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_AfterFuncFires(t *testing.T) {
	l := startLoop(t)

	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestLoop_StoppedTimerDoesNotFire(t *testing.T) {
	l := startLoop(t)

	var fired bool
	timer := l.AfterFunc(20*time.Millisecond, func() { fired = true })
	timer.Stop()
	timer.Stop() // idempotent

	// Wait past the deadline, then synchronise with the loop.
	time.Sleep(50 * time.Millisecond)
	barrier := make(chan struct{})
	l.Post(func() { close(barrier) })
	<-barrier

	assert.False(t, fired)
}

func TestLoop_EveryRepeatsUntilStopped(t *testing.T) {
	l := startLoop(t)

	count := make(chan struct{}, 16)
	ticker := l.Every(5*time.Millisecond, func() { count <- struct{}{} })

	for range 3 {
		select {
		case <-count:
		case <-time.After(2 * time.Second):
			t.Fatal("ticker did not repeat")
		}
	}
	ticker.Stop()
	ticker.Stop()
}

func TestLoop_RunTwice(t *testing.T) {
	l := startLoop(t)

	// Make sure the first Run is active before starting a second one.
	ready := make(chan struct{})
	l.Post(func() { close(ready) })
	<-ready

	err := l.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)
}

func TestStopTimer_Nil(t *testing.T) {
	assert.NotPanics(t, func() { StopTimer(nil) })
}
