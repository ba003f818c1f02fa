// Package app runs the capture loop that turns camera frames into gesture captions.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ayusman/signtext/internal/capture"
	"github.com/ayusman/signtext/internal/detector"
	"github.com/ayusman/signtext/internal/render"
	"github.com/google/uuid"
)

// WindowTitle is the title of the preview window.
const WindowTitle = "Sign Language to Text Converter"

// Config holds configuration options for the application.
type Config struct {
	CameraID     int
	FPS          int
	WindowTitle  string
	QuitKey      int
	KeyPollDelay time.Duration
}

// DefaultConfig returns a Config for the default camera.
func DefaultConfig() Config {
	return Config{
		CameraID:     0,
		FPS:          capture.DefaultFPS,
		WindowTitle:  WindowTitle,
		QuitKey:      'q',
		KeyPollDelay: time.Millisecond,
	}
}

// App owns the camera, hand detector and display for the lifetime of Run.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	display  render.Display
	session  string
	released bool
	onResult func(Result)

	frames     int
	handFrames int
}

// New creates an App. The App takes ownership of camera, det and display and
// closes all three when Run returns.
func New(config Config, camera capture.Camera, det detector.Detector, display render.Display) *App {
	if config.QuitKey == 0 {
		config.QuitKey = DefaultConfig().QuitKey
	}
	if config.KeyPollDelay <= 0 {
		config.KeyPollDelay = DefaultConfig().KeyPollDelay
	}

	return &App{
		config:   config,
		camera:   camera,
		detector: det,
		display:  display,
		session:  uuid.NewString(),
	}
}

// NewDetector returns the MediaPipe detector, or a detector that never finds
// a hand when the MediaPipe service is not installed.
func NewDetector(config detector.Config) detector.Detector {
	mp, err := detector.NewMediaPipeDetector(config)
	if err != nil {
		log.Printf("MediaPipe not available (%v), frames will be shown without gestures", err)
		return detector.NewMockDetector()
	}
	log.Println("Using MediaPipe hand detection")
	return mp
}

// Run captures and annotates frames until the quit key is pressed, the camera
// stops yielding frames, or ctx is cancelled. A camera failure is returned as
// an error. Camera, detector and display are released on every path.
func (a *App) Run(ctx context.Context) error {
	defer a.release()

	if err := a.camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}
	a.camera.SetFPS(a.config.FPS)

	log.Printf("[%s] Capture started on camera %d, press '%c' to quit", a.session, a.config.CameraID, rune(a.config.QuitKey))

	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] Capture cancelled: %v", a.session, ctx.Err())
			return nil
		default:
		}

		result, err := a.Step()
		if err != nil {
			return err
		}
		if a.onResult != nil {
			a.onResult(result)
		}
		if result.Quit {
			log.Printf("[%s] Quit key pressed", a.session)
			return nil
		}
	}
}

// OnResult sets a callback invoked by Run after every processed frame.
func (a *App) OnResult(fn func(Result)) {
	a.onResult = fn
}

// Session returns the identifier used to tag this App's log lines.
func (a *App) Session() string {
	return a.session
}

// Stats returns the number of frames processed and how many of them contained a hand.
func (a *App) Stats() (frames, handFrames int) {
	return a.frames, a.handFrames
}

// release closes every owned resource once.
func (a *App) release() {
	if a.released {
		return
	}
	a.released = true

	if err := a.camera.Close(); err != nil {
		log.Printf("[%s] Error closing camera: %v", a.session, err)
	}
	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("[%s] Error closing detector: %v", a.session, err)
		}
	}
	if err := a.display.Close(); err != nil {
		log.Printf("[%s] Error closing display: %v", a.session, err)
	}

	log.Printf("[%s] Capture stopped after %d frames (%d with a hand)", a.session, a.frames, a.handFrames)
}
