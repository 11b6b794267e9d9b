// Package anim drives eased progress over time on a loop.Scheduler.
package anim
