package toast

import "github.com/jmylchreest/cliptoast/internal/layout"

// SurfaceSpec describes the popup a Host should create for a toast.
type SurfaceSpec struct {
	ID      string
	Title   string
	Message string
	Size    layout.Size
}

// SurfaceEvents are the user interactions a Host reports for one surface.
// Hosts must invoke them on the manager's loop.
type SurfaceEvents struct {
	// PointerLeave fires when the pointer leaves the surface's bounds.
	PointerLeave func()
	// Click fires when the body of the surface is clicked.
	Click func()
	// CloseClicked fires when the explicit close control is pressed.
	CloseClicked func()
}

// Surface is a borderless, always-on-top popup owned by one toast.
type Surface interface {
	Show()
	Move(p layout.Point)
	SetOpacity(opacity float64)
	Destroy()
}

// Host creates surfaces and reports the screen they live on.
type Host interface {
	ScreenSize() layout.Size
	CreateSurface(spec SurfaceSpec, events SurfaceEvents) (Surface, error)
}
