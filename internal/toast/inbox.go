package toast

import (
	"context"
	"fmt"

	"github.com/jmylchreest/cliptoast/internal/loop"
)

// Inbox is the goroutine-safe entry point to a Manager. Every call is handed
// to the manager's loop; callers never touch the manager directly.
type Inbox struct {
	poster  loop.Poster
	manager *Manager
}

// NewInbox returns an inbox that forwards work to m via poster.
func NewInbox(poster loop.Poster, m *Manager) *Inbox {
	return &Inbox{poster: poster, manager: m}
}

// Submit queues a notification. It returns immediately.
func (in *Inbox) Submit(title, message string) {
	in.poster.Post(func() {
		in.manager.Enqueue(title, message)
	})
}

// DismissAll clears the queue and every visible toast.
func (in *Inbox) DismissAll() {
	in.poster.Post(in.manager.ForceCloseAll)
}

// Do runs fn on the manager's loop.
func (in *Inbox) Do(fn func(m *Manager)) {
	in.poster.Post(func() { fn(in.manager) })
}

// Status returns a snapshot taken on the manager's loop.
func (in *Inbox) Status(ctx context.Context) (Status, error) {
	ch := make(chan Status, 1)
	in.poster.Post(func() {
		ch <- in.manager.Snapshot()
	})

	select {
	case st := <-ch:
		return st, nil
	case <-ctx.Done():
		return Status{}, fmt.Errorf("waiting for toast status: %w", ctx.Err())
	}
}
