package display

import (
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

// installStyle adds an application-priority CSS provider to the display.
func installStyle(display *gdk.Display, css string) *gtk.CSSProvider {
	provider := gtk.NewCSSProvider()
	provider.LoadFromString(css)
	gtk.StyleContextAddProviderForDisplay(
		display,
		provider,
		gtk.STYLE_PROVIDER_PRIORITY_APPLICATION,
	)
	return provider
}

// SetStyle replaces the toast stylesheet. Existing toasts restyle at once.
// Call on the main loop.
func (h *Host) SetStyle(css string) {
	h.provider.LoadFromString(css)
	h.logger.Debug("applied toast stylesheet", "bytes", len(css))
}
