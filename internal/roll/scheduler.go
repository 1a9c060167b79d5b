package roll

import "time"

// Timer is a pending callback that can be cancelled.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// fired or was already stopped.
	Stop() bool
}

// Scheduler arms one-shot callbacks. The machine never holds more than one
// armed Timer.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// systemScheduler runs callbacks on the runtime timer goroutines.
type systemScheduler struct{}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

// AfterFunc arms f to run once after d.
func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
