// Package daemon holds the supporting pieces of cliptoastd that sit around
// the toast queue: configuration hot-reload and the daemon's own status
// toasts.
package daemon
