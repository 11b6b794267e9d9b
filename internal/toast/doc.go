// Package toast implements the notification queue and layout manager.
//
// A Manager owns a FIFO of pending (title, message) pairs and at most
// VisibleLimit visible toasts. Every admission tick it materializes one toast
// through a Host, slides it in from the anchor's side, and keeps every visible
// toast at the position its slot and the anchor dictate. All methods must be
// called on the scheduler's loop; other goroutines go through an Inbox.
package toast
