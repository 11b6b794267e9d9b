package toast

import (
	"container/list"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/cliptoast/internal/anim"
	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/loop"
)

// VisibleLimit is the maximum number of toasts on screen at once.
const VisibleLimit = 3

// Timing of the toast lifecycle.
const (
	DefaultLiveDuration = 5 * time.Second
	AdmitInterval       = 1500 * time.Millisecond
	EnterDuration       = 500 * time.Millisecond
	FadeInDuration      = 1000 * time.Millisecond
	ExitDuration        = 5000 * time.Millisecond
	ReflowDuration      = 100 * time.Millisecond
)

// ErrUnknownToast is returned when an ID does not match a visible toast.
var ErrUnknownToast = errors.New("unknown toast")

// Options configures a Manager. The anchor is fixed for the manager's lifetime.
type Options struct {
	Anchor       layout.Anchor
	LiveDuration time.Duration
	ToastSize    layout.Size

	// OnDismiss fires when the user click-dismisses a toast.
	OnDismiss func(Info)
	// OnAdmit fires after a queued item becomes a visible toast.
	OnAdmit func(Info)

	Logger *slog.Logger
}

type pendingItem struct {
	title    string
	message  string
	queuedAt time.Time
}

// Manager owns the pending queue and the visible toasts.
type Manager struct {
	host     Host
	sched    loop.Scheduler
	animator anim.Animator
	logger   *slog.Logger

	anchor layout.Anchor
	size   layout.Size
	live   time.Duration
	limit  int

	onDismiss func(Info)
	onAdmit   func(Info)

	pending *list.List // of pendingItem, oldest first
	visible []*Toast   // index == slot
	ticker  loop.Timer
}

// NewManager creates a manager. It fails if the anchor is not a declared Anchor.
func NewManager(host Host, sched loop.Scheduler, animator anim.Animator, opts Options) (*Manager, error) {
	if !opts.Anchor.Valid() {
		return nil, fmt.Errorf("%w: %d", layout.ErrInvalidAnchor, int(opts.Anchor))
	}
	if host == nil || sched == nil || animator == nil {
		return nil, errors.New("toast manager requires a host, scheduler and animator")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	live := opts.LiveDuration
	if live <= 0 {
		live = DefaultLiveDuration
	}
	size := opts.ToastSize
	if size.Width <= 0 || size.Height <= 0 {
		size = layout.DefaultSize()
	}

	return &Manager{
		host:      host,
		sched:     sched,
		animator:  animator,
		logger:    logger,
		anchor:    opts.Anchor,
		size:      size,
		live:      live,
		limit:     VisibleLimit,
		onDismiss: opts.OnDismiss,
		onAdmit:   opts.OnAdmit,
		pending:   list.New(),
	}, nil
}

// Start begins the admission ticker.
func (m *Manager) Start() {
	if m.ticker != nil {
		return
	}
	m.ticker = m.sched.Every(AdmitInterval, m.Tick)
	m.logger.Info("toast manager started", "anchor", m.anchor, "live", m.live)
}

// Stop halts admissions and destroys every toast.
func (m *Manager) Stop() {
	loop.StopTimer(m.ticker)
	m.ticker = nil
	m.ForceCloseAll()
	m.logger.Info("toast manager stopped")
}

// Anchor returns the anchor the manager was built with.
func (m *Manager) Anchor() layout.Anchor {
	return m.anchor
}

// SetLiveDuration changes the countdown for toasts that go live afterwards.
func (m *Manager) SetLiveDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultLiveDuration
	}
	m.live = d
}

// Enqueue appends a notification to the pending queue.
func (m *Manager) Enqueue(title, message string) {
	m.pending.PushBack(pendingItem{
		title:    title,
		message:  message,
		queuedAt: m.sched.Now(),
	})
	m.logger.Debug("queued toast", "title", title, "queue_size", m.pending.Len())
}

// Tick admits at most one queued notification if there is room.
func (m *Manager) Tick() {
	if len(m.visible) >= m.limit || m.pending.Len() == 0 {
		return
	}

	front := m.pending.Front()
	item := m.pending.Remove(front).(pendingItem)

	t, err := m.materialize(item, len(m.visible))
	if err != nil {
		m.logger.Warn("failed to show toast", "title", item.title, "error", err)
		return
	}
	m.visible = append(m.visible, t)
	m.Reflow(false)

	m.logger.Debug("showed toast",
		"toast_id", t.id,
		"slot", t.slot,
		"active_toasts", len(m.visible),
		"queue_size", m.pending.Len(),
	)

	if m.onAdmit != nil {
		m.onAdmit(t.Info())
	}
}

// materialize creates the toast, its surface, and starts the entry animations.
func (m *Manager) materialize(item pendingItem, slot int) (*Toast, error) {
	t, err := newToast(item.title, item.message, m.sched.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create toast: %w", err)
	}

	surface, err := m.host.CreateSurface(SurfaceSpec{
		ID:      t.id,
		Title:   t.title,
		Message: t.message,
		Size:    m.size,
	}, SurfaceEvents{
		PointerLeave: func() { m.pointerLeft(t) },
		Click:        func() { m.clicked(t) },
		CloseClicked: func() { m.beginExit(t, CloseReasonClosed) },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	screen := m.host.ScreenSize()
	t.surface = surface
	t.slot = slot
	t.target = layout.Target(m.anchor, screen, m.size, slot)
	spawn := layout.SpawnPoint(m.anchor, screen, m.size, t.target)

	t.setOpacity(0)
	t.place(spawn)
	surface.Show()

	end := t.target
	t.enterAnim = m.animator.Animate(anim.Tween{
		Duration: EnterDuration,
		Easing:   anim.InOutCubic,
		Step:     func(p float64) { t.placeBetween(spawn, end, p) },
		Done:     func() { m.entryFinished(t) },
	})
	t.fadeInAnim = m.animator.Animate(anim.Tween{
		Duration: FadeInDuration,
		Easing:   anim.InOutCubic,
		Step:     t.setOpacity,
		Done:     func() { t.fadeInAnim = nil },
	})

	return t, nil
}

// Reflow recomputes every visible toast's target from its slot. Toasts already
// sliding keep going; they pick up the new target when their animation ends.
func (m *Manager) Reflow(animated bool) {
	screen := m.host.ScreenSize()
	for i, t := range m.visible {
		t.slot = i
		t.target = layout.Target(m.anchor, screen, m.size, i)
		if t.inMotion() {
			continue
		}
		if animated {
			m.moveToTarget(t)
		} else {
			t.place(t.target)
		}
	}
}

// moveToTarget slides t to its target unless it is already there or already moving.
func (m *Manager) moveToTarget(t *Toast) {
	if t.state == StateClosed || t.inMotion() || t.pos == t.target {
		return
	}
	from, to := t.pos, t.target
	t.moveAnim = m.animator.Animate(anim.Tween{
		Duration: ReflowDuration,
		Easing:   anim.InOutCubic,
		Step:     func(p float64) { t.placeBetween(from, to, p) },
		Done: func() {
			t.moveAnim = nil
			m.moveToTarget(t)
		},
	})
}

func (m *Manager) entryFinished(t *Toast) {
	t.enterAnim = nil
	if t.state == StateClosed {
		return
	}
	m.moveToTarget(t)

	if t.state != StateEntering {
		return
	}
	if t.hasMoved {
		m.goLive(t)
		return
	}
	t.state = StateAwaitingHover
}

func (m *Manager) goLive(t *Toast) {
	t.state = StateLive
	if t.dismissTimer != nil {
		return
	}
	t.dismissTimer = m.sched.AfterFunc(m.live, func() {
		t.dismissTimer = nil
		m.beginExit(t, CloseReasonExpired)
	})
	m.logger.Debug("toast countdown started", "toast_id", t.id, "live", m.live)
}

func (m *Manager) pointerLeft(t *Toast) {
	if t.state == StateClosed || t.state == StateExiting {
		return
	}
	t.hasMoved = true
	if t.state == StateAwaitingHover {
		m.goLive(t)
	}
}

// beginExit fades t out and removes it once the fade completes.
func (m *Manager) beginExit(t *Toast, reason CloseReason) {
	if t.state == StateExiting || t.state == StateClosed {
		return
	}
	loop.StopTimer(t.dismissTimer)
	t.dismissTimer = nil
	loop.StopTimer(t.fadeInAnim)
	t.fadeInAnim = nil

	t.state = StateExiting
	t.exitAnim = m.animator.Animate(anim.Tween{
		Duration: ExitDuration,
		Easing:   anim.InOutCubic,
		Step:     func(p float64) { t.setOpacity(1 - p) },
		Done: func() {
			t.exitAnim = nil
			m.destroy(t, reason)
			m.removeVisible(t)
		},
	})
	m.logger.Debug("toast exiting", "toast_id", t.id, "reason", reason)
}

// clicked closes every toast at once and drops everything still queued.
// Only t is reported as dismissed.
func (m *Manager) clicked(t *Toast) {
	if t.state == StateClosed {
		return
	}
	dropped := m.pending.Len()

	if m.onDismiss != nil {
		m.onDismiss(t.Info())
	}
	m.destroy(t, CloseReasonDismissed)
	m.ForceCloseAll()

	if dropped > 0 {
		m.logger.Debug("cleared pending queue on dismiss", "dropped", dropped)
	}
}

func (m *Manager) destroy(t *Toast, reason CloseReason) {
	if t.state == StateClosed {
		return
	}
	t.stopAll()
	t.state = StateClosed
	if t.surface != nil {
		t.surface.Destroy()
		t.surface = nil
	}
	m.logger.Debug("closed toast", "toast_id", t.id, "reason", reason)
}

// removeVisible drops t from the visible set and closes the gap.
func (m *Manager) removeVisible(t *Toast) {
	for i, v := range m.visible {
		if v == t {
			m.visible = append(m.visible[:i], m.visible[i+1:]...)
			m.Reflow(true)
			return
		}
	}
}

// PointerLeave marks the toast as seen-and-left and starts its countdown
// once its entry has finished.
func (m *Manager) PointerLeave(id string) error {
	t := m.find(id)
	if t == nil {
		return ErrUnknownToast
	}
	m.pointerLeft(t)
	return nil
}

// PointerLeaveAll does PointerLeave for every visible toast.
func (m *Manager) PointerLeaveAll() {
	for _, t := range m.visible {
		m.pointerLeft(t)
	}
}

// Click handles a click on the toast body.
func (m *Manager) Click(id string) error {
	t := m.find(id)
	if t == nil {
		return ErrUnknownToast
	}
	m.clicked(t)
	return nil
}

// RequestClose handles the toast's close control: the toast fades out.
func (m *Manager) RequestClose(id string) error {
	t := m.find(id)
	if t == nil {
		return ErrUnknownToast
	}
	m.beginExit(t, CloseReasonClosed)
	return nil
}

// ForceCloseAll clears the queue and destroys every visible toast without animation.
func (m *Manager) ForceCloseAll() {
	m.pending.Init()
	visible := m.visible
	m.visible = nil
	for _, t := range visible {
		m.destroy(t, CloseReasonCleared)
	}
	if len(visible) > 0 {
		m.logger.Debug("closed all toasts", "count", len(visible))
	}
}

func (m *Manager) find(id string) *Toast {
	for _, t := range m.visible {
		if t.id == id {
			return t
		}
	}
	return nil
}

// VisibleCount returns the number of visible toasts, including fading ones.
func (m *Manager) VisibleCount() int {
	return len(m.visible)
}

// QueuedCount returns the number of pending notifications.
func (m *Manager) QueuedCount() int {
	return m.pending.Len()
}

// Visible returns snapshots of the visible toasts in slot order.
func (m *Manager) Visible() []Info {
	infos := make([]Info, len(m.visible))
	for i, t := range m.visible {
		infos[i] = t.Info()
	}
	return infos
}
