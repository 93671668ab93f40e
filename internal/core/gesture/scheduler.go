package gesture

import "time"

// Timer is a pending delayed callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already ran
	// or is running.
	Stop() bool
}

// Scheduler starts cancellable delayed callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler runs callbacks on the runtime timer, each on its own goroutine.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
