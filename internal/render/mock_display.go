package render

import (
	"time"

	"gocv.io/x/gocv"
)

// MockDisplay is a test implementation of the Display interface.
// It keeps a copy of the last frame shown and replays scripted key presses.
type MockDisplay struct {
	keys   []int
	shown  int
	last   gocv.Mat
	closed bool
}

// NewMockDisplay creates a MockDisplay that returns keys from successive
// PollKey calls, then NoKey.
func NewMockDisplay(keys ...int) *MockDisplay {
	return &MockDisplay{keys: keys, last: gocv.NewMat()}
}

// Show records the frame.
func (d *MockDisplay) Show(frame *gocv.Mat) error {
	d.shown++
	frame.CopyTo(&d.last)
	return nil
}

// PollKey returns the next scripted key.
func (d *MockDisplay) PollKey(delay time.Duration) int {
	if len(d.keys) == 0 {
		return NoKey
	}
	key := d.keys[0]
	d.keys = d.keys[1:]
	return key
}

// Close marks the display closed. The last frame stays readable until Release.
func (d *MockDisplay) Close() error {
	d.closed = true
	return nil
}

// Shown returns how many frames have been shown.
func (d *MockDisplay) Shown() int {
	return d.shown
}

// Last returns the most recently shown frame.
func (d *MockDisplay) Last() *gocv.Mat {
	return &d.last
}

// Closed reports whether Close has been called.
func (d *MockDisplay) Closed() bool {
	return d.closed
}

// Release frees the copy of the last frame.
func (d *MockDisplay) Release() {
	d.last.Close()
}
