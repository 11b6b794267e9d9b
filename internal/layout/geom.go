package layout

// Toast geometry in logical pixels.
const (
	DefaultWidth  = 320
	DefaultHeight = 250

	// Gutter is the vertical gap between stacked toasts.
	Gutter = 10
	// SideMargin is the distance from the left or right screen edge.
	SideMargin = 20
	// EdgeMargin is the distance from the top or bottom screen edge.
	EdgeMargin = 10
	// Grid is the snapping step applied to every computed coordinate.
	Grid = 10
)

// Point is a screen coordinate of a toast's top-left corner.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DefaultSize returns the standard toast size.
func DefaultSize() Size {
	return Size{Width: DefaultWidth, Height: DefaultHeight}
}

// Pitch is the distance between the tops of two consecutive slots.
func Pitch(toast Size) int {
	return toast.Height + Gutter
}

// Target returns the resting position of the toast in the given slot.
//
// Bottom anchors shift the slot by one before computing the offset, so slot 0
// sits a full pitch above the bottom edge. Center ignores the slot and every
// centered toast lands on the same point.
func Target(a Anchor, screen, toast Size, slot int) Point {
	pitch := Pitch(toast)
	var x, y int

	switch a {
	case TopRight:
		x = screen.Width - SideMargin - toast.Width
		y = EdgeMargin + slot*pitch
	case TopLeft:
		x = SideMargin
		y = EdgeMargin + slot*pitch
	case BottomRight:
		x = screen.Width - SideMargin - toast.Width
		y = screen.Height - (EdgeMargin + (slot+1)*pitch)
	case BottomLeft:
		x = SideMargin
		y = screen.Height - (EdgeMargin + (slot+1)*pitch)
	case Center:
		x = (screen.Width - toast.Width) / 2
		y = (screen.Height - toast.Height) / 2
	}

	return Point{X: snap(x), Y: snap(y)}
}

// SpawnPoint returns where a toast starts its entry animation: fully past the
// right edge for right anchors, fully past the left edge otherwise, at the
// target's height.
func SpawnPoint(a Anchor, screen, toast Size, target Point) Point {
	if a.IsRight() {
		return Point{X: screen.Width, Y: target.Y}
	}
	return Point{X: -toast.Width, Y: target.Y}
}

// snap truncates v to a multiple of Grid.
func snap(v int) int {
	return v / Grid * Grid
}
