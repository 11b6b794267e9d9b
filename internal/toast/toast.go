package toast

import (
	"crypto/rand"
	"math"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/loop"
)

// Toast is one visible notification. It is owned by a Manager and only
// touched on the manager's loop.
type Toast struct {
	id        string
	title     string
	message   string
	createdAt time.Time

	slot     int
	state    State
	hasMoved bool

	surface Surface
	pos     layout.Point
	target  layout.Point
	opacity float64

	// Timer and animation handles; nil when absent.
	dismissTimer loop.Timer
	enterAnim    loop.Timer
	fadeInAnim   loop.Timer
	moveAnim     loop.Timer
	exitAnim     loop.Timer
}

func newToast(title, message string, now time.Time) (*Toast, error) {
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &Toast{
		id:        id.String(),
		title:     title,
		message:   message,
		createdAt: now,
		state:     StateEntering,
	}, nil
}

// ID returns the toast's ULID.
func (t *Toast) ID() string { return t.id }

// Title returns the toast title.
func (t *Toast) Title() string { return t.title }

// Message returns the toast message.
func (t *Toast) Message() string { return t.message }

// State returns the lifecycle state.
func (t *Toast) State() State { return t.state }

// Slot returns the toast's rank among visible toasts.
func (t *Toast) Slot() int { return t.slot }

// Position returns the toast's current on-screen position.
func (t *Toast) Position() layout.Point { return t.pos }

// Target returns where the toast is heading.
func (t *Toast) Target() layout.Point { return t.target }

// Opacity returns the current opacity in [0,1].
func (t *Toast) Opacity() float64 { return t.opacity }

// HasMoved reports whether a pointer-leave has been observed.
func (t *Toast) HasMoved() bool { return t.hasMoved }

// Info returns a snapshot of the toast.
func (t *Toast) Info() Info {
	return Info{
		ID:        t.id,
		Title:     t.title,
		Message:   t.message,
		State:     t.state,
		Slot:      t.slot,
		Position:  t.pos,
		Target:    t.target,
		Opacity:   t.opacity,
		HasMoved:  t.hasMoved,
		CreatedAt: t.createdAt,
	}
}

func (t *Toast) place(p layout.Point) {
	t.pos = p
	if t.surface != nil {
		t.surface.Move(p)
	}
}

func (t *Toast) setOpacity(o float64) {
	t.opacity = o
	if t.surface != nil {
		t.surface.SetOpacity(o)
	}
}

// placeBetween moves the toast to the point p of the way from a to b.
func (t *Toast) placeBetween(a, b layout.Point, p float64) {
	t.place(layout.Point{
		X: lerpInt(a.X, b.X, p),
		Y: lerpInt(a.Y, b.Y, p),
	})
}

// stopAll tears down every timer and animation. Absent handles are skipped.
func (t *Toast) stopAll() {
	loop.StopTimer(t.dismissTimer)
	loop.StopTimer(t.enterAnim)
	loop.StopTimer(t.fadeInAnim)
	loop.StopTimer(t.moveAnim)
	loop.StopTimer(t.exitAnim)
	t.dismissTimer = nil
	t.enterAnim = nil
	t.fadeInAnim = nil
	t.moveAnim = nil
	t.exitAnim = nil
}

// inMotion reports whether a position animation owns the toast's position.
func (t *Toast) inMotion() bool {
	return t.enterAnim != nil || t.moveAnim != nil
}

func lerpInt(a, b int, p float64) int {
	return int(math.Round(float64(a) + float64(b-a)*p))
}
