package tui

import (
	"sort"
	"strings"
	"sync"

	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

// Canvas is a toast.Host that keeps surfaces in memory so they can be drawn
// in the terminal. Surfaces are driven from the manager's loop while the
// view reads frames from the bubbletea goroutine.
type Canvas struct {
	mu     sync.Mutex
	screen layout.Size
	seq    int
	panes  map[string]*pane
}

// Pane is a snapshot of one surface.
type Pane struct {
	ID       string
	Title    string
	Message  string
	Position layout.Point
	Size     layout.Size
	Opacity  float64
	Shown    bool

	seq int
}

type pane struct {
	canvas *Canvas
	Pane
}

// NewCanvas creates a canvas that reports the given virtual screen size.
func NewCanvas(screen layout.Size) *Canvas {
	return &Canvas{
		screen: screen,
		panes:  make(map[string]*pane),
	}
}

// ScreenSize implements toast.Host.
func (c *Canvas) ScreenSize() layout.Size {
	return c.screen
}

// CreateSurface implements toast.Host.
func (c *Canvas) CreateSurface(spec toast.SurfaceSpec, _ toast.SurfaceEvents) (toast.Surface, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	p := &pane{
		canvas: c,
		Pane: Pane{
			ID:      spec.ID,
			Title:   spec.Title,
			Message: spec.Message,
			Size:    spec.Size,
			seq:     c.seq,
		},
	}
	c.panes[spec.ID] = p
	return p, nil
}

// Frame returns the live surfaces, oldest first.
func (c *Canvas) Frame() []Pane {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Pane, 0, len(c.panes))
	for _, p := range c.panes {
		out = append(out, p.Pane)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (p *pane) Show() {
	p.canvas.mu.Lock()
	defer p.canvas.mu.Unlock()
	p.Shown = true
}

func (p *pane) Move(pt layout.Point) {
	p.canvas.mu.Lock()
	defer p.canvas.mu.Unlock()
	p.Position = pt
}

func (p *pane) SetOpacity(o float64) {
	p.canvas.mu.Lock()
	defer p.canvas.mu.Unlock()
	p.Opacity = o
}

func (p *pane) Destroy() {
	p.canvas.mu.Lock()
	defer p.canvas.mu.Unlock()
	delete(p.canvas.panes, p.ID)
}

// Border runes, opaque and faded.
var (
	solidBorder = [6]rune{'┌', '┐', '└', '┘', '─', '│'}
	fadedBorder = [6]rune{'┌', '┐', '└', '┘', '┄', '┆'}
)

// Render draws frame scaled from screen onto a cols x rows grid.
// Panes that are not shown or have faded below 5% are skipped.
func Render(frame []Pane, screen layout.Size, cols, rows int) string {
	if cols <= 0 || rows <= 0 || screen.Width <= 0 || screen.Height <= 0 {
		return ""
	}

	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cols))
	}

	set := func(x, y int, r rune) {
		if x >= 0 && x < cols && y >= 0 && y < rows {
			grid[y][x] = r
		}
	}

	for _, p := range frame {
		if !p.Shown || p.Opacity < 0.05 {
			continue
		}

		x0 := p.Position.X * cols / screen.Width
		y0 := p.Position.Y * rows / screen.Height
		x1 := (p.Position.X+p.Size.Width)*cols/screen.Width - 1
		y1 := (p.Position.Y+p.Size.Height)*rows/screen.Height - 1
		if x1-x0 < 2 {
			x1 = x0 + 2
		}
		if y1-y0 < 2 {
			y1 = y0 + 2
		}

		b := solidBorder
		if p.Opacity < 0.5 {
			b = fadedBorder
		}

		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				set(x, y, ' ')
			}
		}
		for x := x0 + 1; x < x1; x++ {
			set(x, y0, b[4])
			set(x, y1, b[4])
		}
		for y := y0 + 1; y < y1; y++ {
			set(x0, y, b[5])
			set(x1, y, b[5])
		}
		set(x0, y0, b[0])
		set(x1, y0, b[1])
		set(x0, y1, b[2])
		set(x1, y1, b[3])

		inner := x1 - x0 - 1
		writeText(set, x0+1, y0+1, inner, p.Title)
		if y1-y0 > 3 {
			writeText(set, x0+1, y0+2, inner, p.Message)
		}
	}

	lines := make([]string, rows)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return strings.Join(lines, "\n")
}

func writeText(set func(x, y int, r rune), x, y, width int, s string) {
	runes := []rune(s)
	if len(runes) > width {
		if width < 1 {
			return
		}
		runes = append(runes[:width-1], '…')
	}
	for i, r := range runes {
		set(x+i, y, r)
	}
}
