package location

import "gonum.org/v1/gonum/stat"

// Window is a fixed capacity FIFO of values with a running arithmetic mean.
// Once full, pushing a value evicts the oldest one.
type Window struct {
	vals []float64
	cap  int
}

// NewWindow creates new Window with capacity c and returns it.
// Capacity less than 1 is treated as 1.
func NewWindow(c int) *Window {
	if c < 1 {
		c = 1
	}

	return &Window{
		vals: make([]float64, 0, c),
		cap:  c,
	}
}

// Push appends v evicting the oldest value if the window is full
func (w *Window) Push(v float64) {
	if len(w.vals) == w.cap {
		copy(w.vals, w.vals[1:])
		w.vals = w.vals[:len(w.vals)-1]
	}
	w.vals = append(w.vals, v)
}

// Mean returns the arithmetic mean of the window values.
// It returns NaN if the window is empty.
func (w *Window) Mean() float64 {
	return stat.Mean(w.vals, nil)
}

// Values returns a copy of window values, oldest first
func (w *Window) Values() []float64 {
	vals := make([]float64, len(w.vals))
	copy(vals, w.vals)

	return vals
}

// Len returns the number of values in the window
func (w *Window) Len() int {
	return len(w.vals)
}

// Cap returns window capacity
func (w *Window) Cap() int {
	return w.cap
}

// Clear removes all values from the window
func (w *Window) Clear() {
	w.vals = w.vals[:0]
}
