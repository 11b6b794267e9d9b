// Package dbus exposes the toast queue on the session bus.
// A Server owns the io.github.jmylchreest.cliptoast name and accepts Enqueue,
// DismissAll and Status calls; a Client calls them from the command line.
// Mirror optionally forwards desktop notifications sent to
// org.freedesktop.Notifications into the queue.
package dbus
