package loop

import (
	"sync"
	"time"
)

// Clock supplies tick timestamps. Readings from the system clock carry a
// monotonic component, so wall clock jumps do not move the win deadline.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the monotonic system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// MockClock is a manually advanced Clock for tests and replays.
type MockClock struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockClock creates a clock stopped at start.
func NewMockClock(start time.Time) *MockClock {
	return &MockClock{now: start}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
