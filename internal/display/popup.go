package display

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"

	"github.com/jmylchreest/cliptoast/internal/config"
	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

// Popup is a toast window. All methods must be called on the GTK thread.
type Popup struct {
	window   *gtk.Window
	closeBtn *gtk.Button
	host     *Host
	events   toast.SurfaceEvents
	closed   bool
}

var _ toast.Surface = (*Popup)(nil)

func newPopup(h *Host, spec toast.SurfaceSpec, events toast.SurfaceEvents, monitor *gdk.Monitor) *Popup {
	p := &Popup{host: h, events: events}

	p.window = gtk.NewWindow()
	p.window.SetApplication(h.app)
	p.window.SetDecorated(false)
	p.window.SetResizable(false)
	p.window.AddCSSClass("cliptoast")
	p.window.SetDefaultSize(spec.Size.Width, spec.Size.Height)
	p.window.SetSizeRequest(spec.Size.Width, spec.Size.Height)

	// Anchor to the top-left corner so the margins are absolute coordinates.
	layershell.InitForWindow(p.window)
	layershell.SetLayer(p.window, layershell.LayerShellLayerOverlay)
	layershell.SetExclusiveZone(p.window, -1)
	layershell.SetKeyboardMode(p.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(p.window, "cliptoast")
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(p.window, layershell.LayerShellEdgeLeft, true)
	if monitor != nil {
		layershell.SetMonitor(p.window, monitor)
	}

	p.buildUI(spec)
	p.connectSignals()
	return p
}

func (p *Popup) buildUI(spec toast.SurfaceSpec) {
	box := gtk.NewBox(gtk.OrientationVertical, 6)
	box.AddCSSClass("toast")
	box.SetVExpand(true)

	header := gtk.NewBox(gtk.OrientationHorizontal, 8)
	title := gtk.NewLabel(spec.Title)
	title.AddCSSClass("toast-title")
	title.SetXAlign(0)
	title.SetHExpand(true)
	title.SetEllipsize(3) // PANGO_ELLIPSIZE_END
	header.Append(title)

	p.closeBtn = gtk.NewButtonFromIconName("window-close-symbolic")
	p.closeBtn.AddCSSClass("toast-close")
	p.closeBtn.AddCSSClass("flat")
	p.closeBtn.SetVAlign(gtk.AlignStart)
	header.Append(p.closeBtn)
	box.Append(header)

	message := gtk.NewLabel(spec.Message)
	message.AddCSSClass("toast-message")
	message.SetXAlign(0)
	message.SetYAlign(0)
	message.SetWrap(true)
	message.SetWrapMode(2) // PANGO_WRAP_WORD_CHAR
	message.SetVExpand(true)
	message.SetSelectable(false)
	box.Append(message)

	p.window.SetChild(box)
}

func (p *Popup) connectSignals() {
	p.closeBtn.ConnectClicked(func() {
		if p.closed || p.events.CloseClicked == nil {
			return
		}
		p.events.CloseClicked()
	})

	motionCtrl := gtk.NewEventControllerMotion()
	motionCtrl.ConnectLeave(func() {
		if p.closed || p.events.PointerLeave == nil {
			return
		}
		p.events.PointerLeave()
	})
	p.window.AddController(motionCtrl)

	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(0) // All buttons
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		p.handleClick(clickCtrl.CurrentButton())
	})
	p.window.AddController(clickCtrl)
}

func (p *Popup) handleClick(button uint) {
	if p.closed {
		return
	}
	switch p.host.mouseAction(button) {
	case config.MouseActionDismiss:
		if p.events.Click != nil {
			p.events.Click()
		}
	case config.MouseActionClose:
		if p.events.CloseClicked != nil {
			p.events.CloseClicked()
		}
	case config.MouseActionNone:
	}
}

// Show maps the window.
func (p *Popup) Show() {
	if p.closed {
		return
	}
	p.window.Present()
}

// Move places the window's top-left corner at pt.
func (p *Popup) Move(pt layout.Point) {
	if p.closed {
		return
	}
	layershell.SetMargin(p.window, layershell.LayerShellEdgeLeft, pt.X)
	layershell.SetMargin(p.window, layershell.LayerShellEdgeTop, pt.Y)
}

// SetOpacity sets the whole window's opacity.
func (p *Popup) SetOpacity(opacity float64) {
	if p.closed {
		return
	}
	p.window.SetOpacity(opacity)
}

// Destroy closes the window. Later calls are ignored.
func (p *Popup) Destroy() {
	if p.closed {
		return
	}
	p.closed = true
	p.window.Destroy()
}
