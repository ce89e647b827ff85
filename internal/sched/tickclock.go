// internal/sched/tickclock.go

package sched

import "fmt"

// SimClock is the simulated clock of one run. It only moves forward and
// counts how many times it was moved.
type SimClock struct {
	now   int64
	count int64
}

// NewSimClock creates a clock starting at t=0.
func NewSimClock() *SimClock {
	return &SimClock{}
}

// Now returns the current simulated instant.
func (c *SimClock) Now() int64 { return c.now }

// Advance moves the clock forward by d. d must be positive.
func (c *SimClock) Advance(d int64) error {
	if d <= 0 {
		return fmt.Errorf("clock advance by %d at t=%d", d, c.now)
	}
	c.now += d
	c.count++
	return nil
}

// JumpTo moves the clock to t, which must lie strictly in the future.
func (c *SimClock) JumpTo(t int64) error {
	return c.Advance(t - c.now)
}

// Count returns how many times the clock has moved.
func (c *SimClock) Count() int64 {
	return c.count
}
