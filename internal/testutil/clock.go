package testutil

import (
	"sync"
	"time"
)

// Epoch is the instant DeterministicClock starts from: the timestamp in the
// preamble of the kstate.h fixture.
var Epoch = time.Date(2013, time.January, 14, 11, 20, 0, 0, time.UTC)

// DeterministicClock is a wall clock for tests that advances by a fixed step
// on every call to Now.
//
// With step 0 it always returns the same instant, which makes generated
// preamble lines byte-identical across runs and golden comparisons stable.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	calls int64
}

// NewDeterministicClock creates a clock starting at start. Each call to Now
// returns start + n*step, where n is the number of earlier calls.
func NewDeterministicClock(start time.Time, step time.Duration) *DeterministicClock {
	return &DeterministicClock{start: start, step: step}
}

// NewFixedClock creates a clock that always returns Epoch.
func NewFixedClock() *DeterministicClock {
	return NewDeterministicClock(Epoch, 0)
}

// Now returns the current instant and advances the clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.calls) * c.step)
	c.calls++
	return t
}
