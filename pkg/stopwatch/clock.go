package stopwatch

import (
	"time"

	"code.cloudfoundry.org/clock"
)

// Clock is the time source a Stopwatch reads. Any clock.Clock satisfies it.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// NewRealClock returns the process clock. time.Now carries a monotonic
// reading, so Since never observes wall clock steps.
func NewRealClock() Clock {
	return clock.NewClock()
}

var _ Clock = clock.NewClock()
