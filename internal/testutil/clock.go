package testutil

import (
	"sync"
	"time"
)

// FixedClock provides a thread-safe, manually advanced wall clock for tests.
//
// Date-time literals built from a FixedClock compile to identical parameter
// lists on every run, which golden files depend on.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// DefaultTime is the instant a FixedClock created with a zero time starts at.
var DefaultTime = time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC)

// NewFixedClock creates a clock reading start. A zero start reads DefaultTime.
func NewFixedClock(start time.Time) *FixedClock {
	if start.IsZero() {
		start = DefaultTime
	}
	return &FixedClock{now: start}
}

// Now returns the current reading without advancing.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new reading.
func (c *FixedClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
