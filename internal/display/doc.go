// Package display puts toasts on screen with GTK4 and Wayland layer-shell.
// Each toast is a borderless layer-shell window anchored to the top-left
// corner of the output, positioned by its margins. The package also provides
// a loop.Scheduler backed by the GLib main loop so the toast manager runs on
// the GTK thread.
package display
