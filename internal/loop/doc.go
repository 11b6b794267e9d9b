// Package loop provides the single-goroutine scheduler that owns all toast state.
// Timers and hand-offs resume on the loop via callbacks; nothing in the core is
// preempted and no locks are needed inside it.
package loop
