package clock

import (
	"sync"
	"time"

	"github.com/renato0307/roomsched/internal/ports"
)

// SystemClock implements ports.Clock using the system time in the facility time zone
type SystemClock struct {
	loc *time.Location
}

var (
	_ ports.Clock = (*SystemClock)(nil)
	_ ports.Clock = (*FixedClock)(nil)
)

// NewSystemClock creates a SystemClock for the given location (time.Local when nil)
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

// Now returns the current time in the clock's location
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock implements ports.Clock with a settable instant, for tests
type FixedClock struct {
	current time.Time
	mu      sync.Mutex
}

// NewFixedClock creates a FixedClock at t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{current: t}
}

// Now returns the fixed time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Set updates the fixed time
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// Advance moves the fixed time forward by d
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(d)
}
