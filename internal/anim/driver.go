package anim

import (
	"time"

	"github.com/jmylchreest/cliptoast/internal/loop"
)

// DefaultFrameInterval is roughly one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// Tween describes a single animation.
// Step receives eased progress; Done runs once after the final Step unless the
// animation was stopped first.
type Tween struct {
	Duration time.Duration
	Easing   Easing
	Step     func(progress float64)
	Done     func()
}

// Animator starts tweens. The returned handle stops the tween; a stopped tween
// never calls Step or Done again.
type Animator interface {
	Animate(tw Tween) loop.Timer
}

// Driver is an Animator that steps tweens on a scheduler at a fixed frame rate.
type Driver struct {
	sched loop.Scheduler
	frame time.Duration
}

var _ Animator = (*Driver)(nil)

// NewDriver creates a Driver. A non-positive frame uses DefaultFrameInterval.
func NewDriver(sched loop.Scheduler, frame time.Duration) *Driver {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Driver{sched: sched, frame: frame}
}

// Animate starts tw. Step(ease(0)) is applied immediately; Done always runs
// from a later frame, never from inside Animate.
func (d *Driver) Animate(tw Tween) loop.Timer {
	if tw.Easing == nil {
		tw.Easing = Linear
	}
	r := &run{
		tween: tw,
		sched: d.sched,
		start: d.sched.Now(),
	}
	r.step(0)
	r.ticker = d.sched.Every(d.frame, r.frame)
	return r
}

type run struct {
	tween   Tween
	sched   loop.Scheduler
	start   time.Time
	ticker  loop.Timer
	stopped bool
}

func (r *run) step(p float64) {
	if r.tween.Step != nil {
		r.tween.Step(r.tween.Easing(clamp01(p)))
	}
}

func (r *run) frame() {
	if r.stopped {
		return
	}

	p := 1.0
	if r.tween.Duration > 0 {
		p = float64(r.sched.Now().Sub(r.start)) / float64(r.tween.Duration)
	}
	r.step(p)
	if p < 1 {
		return
	}

	r.stopped = true
	r.ticker.Stop()
	if r.tween.Done != nil {
		r.tween.Done()
	}
}

// Stop halts the tween without calling Done.
func (r *run) Stop() {
	if r.stopped {
		return
	}
	r.stopped = true
	r.ticker.Stop()
}
