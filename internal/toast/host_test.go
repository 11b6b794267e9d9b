package toast

import (
	"github.com/jmylchreest/cliptoast/internal/layout"
)

type fakeSurface struct {
	spec   SurfaceSpec
	events SurfaceEvents

	shown     bool
	destroyed bool
	moves     []layout.Point
	opacity   float64

	callsAfterDestroy int
}

func (s *fakeSurface) touch() {
	if s.destroyed {
		s.callsAfterDestroy++
	}
}

func (s *fakeSurface) Show() {
	s.touch()
	s.shown = true
}

func (s *fakeSurface) Move(p layout.Point) {
	s.touch()
	s.moves = append(s.moves, p)
}

func (s *fakeSurface) SetOpacity(o float64) {
	s.touch()
	s.opacity = o
}

func (s *fakeSurface) Destroy() {
	s.touch()
	s.destroyed = true
}

func (s *fakeSurface) position() layout.Point {
	if len(s.moves) == 0 {
		return layout.Point{}
	}
	return s.moves[len(s.moves)-1]
}

type fakeHost struct {
	screen   layout.Size
	surfaces []*fakeSurface
	failNext error
}

func newFakeHost() *fakeHost {
	return &fakeHost{screen: layout.Size{Width: 1920, Height: 1080}}
}

func (h *fakeHost) ScreenSize() layout.Size {
	return h.screen
}

func (h *fakeHost) CreateSurface(spec SurfaceSpec, events SurfaceEvents) (Surface, error) {
	if err := h.failNext; err != nil {
		h.failNext = nil
		return nil, err
	}
	s := &fakeSurface{spec: spec, events: events}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) live() int {
	n := 0
	for _, s := range h.surfaces {
		if !s.destroyed {
			n++
		}
	}
	return n
}

func (h *fakeHost) byTitle(title string) *fakeSurface {
	for _, s := range h.surfaces {
		if s.spec.Title == title {
			return s
		}
	}
	return nil
}
