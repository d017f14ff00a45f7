// Package testutil provides deterministic clocks and id generators for
// tests that pin timestamps and identifiers.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// Clock is a thread-safe manual clock. Now returns the current instant
// and optionally advances by a fixed step so consecutive operations get
// distinct, predictable timestamps.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock frozen at start. A non-zero step makes every
// Now call advance the clock by that amount after reading it.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances by the configured step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set rewinds or fast-forwards the clock to t. Used for test reuse.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// IDSequence returns a generator producing prefix-1, prefix-2, ...
// Thread-safe.
func IDSequence(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
