package service

import "time"

// Scheduler runs callbacks after a delay. Tests substitute a manual implementation.
type Scheduler interface {
	// AfterFunc calls f in its own goroutine after d. stop prevents the call
	// if it has not fired yet and reports whether it did so.
	AfterFunc(d time.Duration, f func()) (stop func() bool)
}
