package toast

import (
	"time"

	"github.com/jmylchreest/cliptoast/internal/layout"
)

// Info is a point-in-time snapshot of a visible toast.
type Info struct {
	ID        string       `json:"id" yaml:"id"`
	Title     string       `json:"title" yaml:"title"`
	Message   string       `json:"message" yaml:"message"`
	State     State        `json:"state" yaml:"state"`
	Slot      int          `json:"slot" yaml:"slot"`
	Position  layout.Point `json:"position" yaml:"position"`
	Target    layout.Point `json:"target" yaml:"target"`
	Opacity   float64      `json:"opacity" yaml:"opacity"`
	HasMoved  bool         `json:"has_moved" yaml:"has_moved"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
}

// QueuedItem is a notification waiting for a free slot.
type QueuedItem struct {
	Title    string    `json:"title" yaml:"title"`
	Message  string    `json:"message" yaml:"message"`
	QueuedAt time.Time `json:"queued_at" yaml:"queued_at"`
}

// Status summarises the manager.
type Status struct {
	Anchor  layout.Anchor `json:"anchor" yaml:"anchor"`
	Queued  []QueuedItem  `json:"queued" yaml:"queued"`
	Visible []Info        `json:"visible" yaml:"visible"`
}

// Snapshot returns the manager's current status.
func (m *Manager) Snapshot() Status {
	queued := make([]QueuedItem, 0, m.pending.Len())
	for e := m.pending.Front(); e != nil; e = e.Next() {
		item := e.Value.(pendingItem)
		queued = append(queued, QueuedItem{
			Title:    item.title,
			Message:  item.message,
			QueuedAt: item.queuedAt,
		})
	}
	return Status{
		Anchor:  m.anchor,
		Queued:  queued,
		Visible: m.Visible(),
	}
}
