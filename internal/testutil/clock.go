package testutil

import "time"

// FakeClock is a clock that only moves when told to.
type FakeClock struct {
	current time.Time
}

// NewFakeClock starts a clock at a fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{current: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
