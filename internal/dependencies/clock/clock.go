// Package clock stamps event records.
package clock

import "time"

// Clock is swapped for a settable clock in tests
type Clock interface {
	Now() time.Time
}

// Precision is the resolution event timestamps are kept at. The sqlite
// store persists unix milliseconds, so coarser stamps round-trip exactly.
const Precision = time.Millisecond

// RealClock reads the system clock
type RealClock struct{}

// New creates a RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time truncated to Precision
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(Precision)
}
