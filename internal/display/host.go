package display

import (
	"log/slog"
	"sync"
	"unsafe"

	coreglib "github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

// fallbackScreen is used when no monitor can be queried.
var fallbackScreen = layout.Size{Width: 1920, Height: 1080}

// Host creates toast windows for a GTK application.
type Host struct {
	app      *gtk.Application
	display  *gdk.Display
	provider *gtk.CSSProvider
	logger   *slog.Logger

	mu    sync.RWMutex
	mouse config.MouseConfig
}

var _ toast.Host = (*Host)(nil)

// NewHost creates a Host styled with css. Call it from the application's
// activate handler.
func NewHost(app *gtk.Application, mouse config.MouseConfig, css string, logger *slog.Logger) (*Host, error) {
	if logger == nil {
		logger = slog.Default()
	}

	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Op: "new host", Message: "no display available"}
	}
	return &Host{
		app:      app,
		display:  display,
		provider: installStyle(display, css),
		logger:   logger,
		mouse:    mouse,
	}, nil
}

// SetMouse replaces the mouse button mapping for new and existing toasts.
func (h *Host) SetMouse(mouse config.MouseConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mouse = mouse
}

func (h *Host) mouseAction(button uint) config.MouseAction {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return actionForButton(h.mouse, button)
}

// actionForButton maps a GDK button number to the configured action.
func actionForButton(mouse config.MouseConfig, button uint) config.MouseAction {
	switch button {
	case gdk.BUTTON_PRIMARY:
		return config.MouseAction(mouse.Left)
	case gdk.BUTTON_MIDDLE:
		return config.MouseAction(mouse.Middle)
	case gdk.BUTTON_SECONDARY:
		return config.MouseAction(mouse.Right)
	default:
		return config.MouseActionNone
	}
}

// ScreenSize returns the geometry of the first monitor.
func (h *Host) ScreenSize() layout.Size {
	monitor := firstMonitor(h.display)
	if monitor == nil {
		h.logger.Warn("no monitor available, assuming default screen size", "size", fallbackScreen)
		return fallbackScreen
	}
	geom := monitor.Geometry()
	if geom.Width() <= 0 || geom.Height() <= 0 {
		return fallbackScreen
	}
	return layout.Size{Width: geom.Width(), Height: geom.Height()}
}

// CreateSurface builds and returns a hidden popup window for one toast.
func (h *Host) CreateSurface(spec toast.SurfaceSpec, events toast.SurfaceEvents) (toast.Surface, error) {
	if h.app == nil {
		return nil, &DisplayError{Op: "create surface", Message: "no application"}
	}
	p := newPopup(h, spec, events, firstMonitor(h.display))
	h.logger.Debug("created toast window", "toast_id", spec.ID)
	return p, nil
}

// firstMonitor returns the first monitor of the display, if any.
func firstMonitor(display *gdk.Display) *gdk.Monitor {
	if display == nil {
		return nil
	}
	monitors := display.Monitors()
	if monitors == nil || monitors.NItems() == 0 {
		return nil
	}
	return wrapMonitor(monitors.Item(0))
}

// wrapMonitor wraps a coreglib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper for list items.
func wrapMonitor(obj *coreglib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	type monitor struct {
		_ [0]func()
		*coreglib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
