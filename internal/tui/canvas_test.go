package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

func TestCanvas_TracksSurfaces(t *testing.T) {
	c := NewCanvas(layout.Size{Width: 1920, Height: 1080})
	assert.Equal(t, layout.Size{Width: 1920, Height: 1080}, c.ScreenSize())

	a, err := c.CreateSurface(toast.SurfaceSpec{ID: "a", Title: "first", Size: layout.DefaultSize()}, toast.SurfaceEvents{})
	require.NoError(t, err)
	b, err := c.CreateSurface(toast.SurfaceSpec{ID: "b", Title: "second", Size: layout.DefaultSize()}, toast.SurfaceEvents{})
	require.NoError(t, err)

	a.Move(layout.Point{X: 100, Y: 200})
	a.SetOpacity(0.5)
	a.Show()

	frame := c.Frame()
	require.Len(t, frame, 2)
	assert.Equal(t, "first", frame[0].Title, "oldest first")
	assert.Equal(t, layout.Point{X: 100, Y: 200}, frame[0].Position)
	assert.Equal(t, 0.5, frame[0].Opacity)
	assert.True(t, frame[0].Shown)
	assert.False(t, frame[1].Shown)

	b.Destroy()
	frame = c.Frame()
	require.Len(t, frame, 1)
	assert.Equal(t, "a", frame[0].ID)
}

func TestRender_ScalesAndClips(t *testing.T) {
	screen := layout.Size{Width: 1000, Height: 1000}
	frame := []Pane{
		{Title: "hello", Message: "world", Position: layout.Point{X: 0, Y: 0}, Size: layout.Size{Width: 500, Height: 500}, Opacity: 1, Shown: true},
		{Title: "offscreen", Position: layout.Point{X: 900, Y: 900}, Size: layout.Size{Width: 500, Height: 500}, Opacity: 1, Shown: true},
		{Title: "hidden", Position: layout.Point{X: 500, Y: 0}, Size: layout.Size{Width: 500, Height: 500}, Opacity: 1},
	}

	out := Render(frame, screen, 20, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for _, l := range lines {
		assert.Equal(t, 20, len([]rune(l)))
	}

	assert.True(t, strings.HasPrefix(lines[0], "┌────────┐"))
	assert.True(t, strings.HasPrefix(lines[1], "│hello"))
	assert.True(t, strings.HasPrefix(lines[2], "│world"))
	assert.True(t, strings.HasPrefix(lines[4], "└────────┘"))
	assert.Equal(t, '┌', []rune(lines[9])[18], "partly off-screen panes are clipped")
	assert.NotContains(t, out, "hidden")
}

func TestRender_FadedAndTruncated(t *testing.T) {
	screen := layout.Size{Width: 100, Height: 100}
	frame := []Pane{
		{Title: "a very long title", Size: layout.Size{Width: 50, Height: 50}, Opacity: 0.3, Shown: true},
		{Title: "gone", Position: layout.Point{X: 50}, Size: layout.Size{Width: 50, Height: 50}, Opacity: 0.01, Shown: true},
	}

	out := Render(frame, screen, 20, 10)
	assert.Contains(t, out, "┄")
	assert.Contains(t, out, "┆a very …┆")
	assert.NotContains(t, out, "gone")
}

func TestRender_EmptyGrid(t *testing.T) {
	assert.Empty(t, Render(nil, layout.Size{Width: 100, Height: 100}, 0, 10))
	assert.Empty(t, Render(nil, layout.Size{}, 10, 10))
}
