package render

import (
	"errors"
	"time"

	"gocv.io/x/gocv"
)

// NoKey is returned by PollKey when nothing was pressed.
const NoKey = -1

// Display shows frames and reports key presses.
type Display interface {
	// Show renders frame. The frame may be closed once Show returns.
	Show(frame *gocv.Mat) error

	// PollKey waits up to delay for a key press and returns its code, or NoKey.
	PollKey(delay time.Duration) int

	// Close destroys the display.
	Close() error
}

// Window is a Display backed by an OpenCV HighGUI window.
type Window struct {
	window *gocv.Window
}

// NewWindow opens a window with the given title.
// On macOS it must be called from the main goroutine.
func NewWindow(title string) *Window {
	return &Window{window: gocv.NewWindow(title)}
}

// Show displays frame in the window.
func (w *Window) Show(frame *gocv.Mat) error {
	if w.window == nil {
		return errors.New("window is closed")
	}
	if frame == nil || frame.Empty() {
		return errors.New("no frame to show")
	}
	w.window.IMShow(*frame)
	return nil
}

// PollKey waits for a key press. HighGUI needs at least 1ms to pump events.
func (w *Window) PollKey(delay time.Duration) int {
	if w.window == nil {
		return NoKey
	}

	ms := int(delay / time.Millisecond)
	if ms < 1 {
		ms = 1
	}

	key := w.window.WaitKey(ms)
	if key < 0 {
		return NoKey
	}
	return key & 0xFF
}

// Close destroys the window. It is safe to call more than once.
func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	err := w.window.Close()
	w.window = nil
	return err
}
