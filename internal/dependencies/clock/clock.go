package clock

import "time"

// Clock is the time source for session timestamps and price fetch times.
// Injected so tests can pin the epoch-ms values written to storage.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}
