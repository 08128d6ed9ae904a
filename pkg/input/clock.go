package input

import "time"

// A Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from running. It reports whether the
	// call stopped the timer.
	Stop() bool
}

// A Clock tells time and schedules callbacks. Filters only ever call
// AfterFunc callbacks as if they ran on their owning goroutine, so a Clock
// used with a filter must deliver callbacks there (see gopointer.Session).
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

// SystemClock returns a Clock backed by the time package. Its callbacks run
// on their own goroutine, so filters need it wrapped to post them back to
// their owner (see gopointer.Session).
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
