// Package clock provides the wall-clock and monotonic time source used to stamp smoothed fixes.
package clock

import (
	"sync"
	"time"
)

// Clock provides wall-clock time and a monotonic elapsed duration.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
	// Elapsed returns monotonic time elapsed since the clock was started.
	Elapsed() time.Duration
}

// Real implements Clock using the standard time package.
type Real struct {
	start time.Time
}

// NewReal creates new Real clock started now and returns it.
func NewReal() *Real {
	return &Real{start: time.Now()}
}

// Now returns the current time.
func (r *Real) Now() time.Time {
	return time.Now()
}

// Elapsed returns monotonic time elapsed since NewReal.
func (r *Real) Elapsed() time.Duration {
	return time.Since(r.start)
}

// Mock is a manually controlled clock for testing.
type Mock struct {
	mu      sync.Mutex
	now     time.Time
	elapsed time.Duration
}

// NewMock creates a new Mock set to the given time.
func NewMock(t time.Time) *Mock {
	return &Mock{now: t}
}

// Now returns the mocked current time.
func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Elapsed returns the mocked monotonic time.
func (m *Mock) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Set sets the wall clock to t. Elapsed time is not affected.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves both clocks forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	m.elapsed += d
}
