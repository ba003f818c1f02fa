package app

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/ayusman/signtext/internal/capture"
	"github.com/ayusman/signtext/internal/detector"
	"github.com/ayusman/signtext/internal/gesture"
	"github.com/ayusman/signtext/internal/render"
	"github.com/google/go-cmp/cmp"
	"gocv.io/x/gocv"
)

// testFrame returns a black BGR frame with a single blue pixel in the top-left corner.
func testFrame() *gocv.Mat {
	frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	frame.SetUCharAt(0, 0, 255)
	return &frame
}

type fixture struct {
	frame    *gocv.Mat
	camera   *capture.MockCamera
	detector *detector.MockDetector
	display  *render.MockDisplay
	app      *App
}

func newFixture(t *testing.T, loop bool, keys ...int) *fixture {
	t.Helper()

	f := &fixture{frame: testFrame()}
	f.camera = capture.NewMockCamera([]*gocv.Mat{f.frame}, loop)
	f.detector = detector.NewMockDetector()
	f.display = render.NewMockDisplay(keys...)
	f.app = New(DefaultConfig(), f.camera, f.detector, f.display)

	t.Cleanup(func() {
		f.frame.Close()
		f.display.Release()
	})
	return f
}

func (f *fixture) assertReleased(t *testing.T) {
	t.Helper()

	if got := f.camera.Closes(); got != 1 {
		t.Errorf("camera closed %d times, want 1", got)
	}
	if !f.detector.Closed() {
		t.Error("detector not closed")
	}
	if !f.display.Closed() {
		t.Error("display not closed")
	}
}

func TestApp_Run_QuitKey(t *testing.T) {
	f := newFixture(t, true, render.NoKey, 'x', 'q', 'q')

	if err := f.app.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := f.display.Shown(); got != 3 {
		t.Errorf("frames shown = %d, want 3", got)
	}
	if frames, _ := f.app.Stats(); frames != 3 {
		t.Errorf("Stats() frames = %d, want 3", frames)
	}
	f.assertReleased(t)
}

func TestApp_Run_CameraFailure(t *testing.T) {
	f := newFixture(t, false)

	err := f.app.Run(context.Background())
	if !errors.Is(err, capture.ErrNoMoreFrames) {
		t.Fatalf("Run() error = %v, want %v", err, capture.ErrNoMoreFrames)
	}

	if got := f.display.Shown(); got != 1 {
		t.Errorf("frames shown = %d, want 1", got)
	}
	f.assertReleased(t)
}

func TestApp_Run_OpenFailure(t *testing.T) {
	f := newFixture(t, true)
	openErr := errors.New("device busy")
	f.camera.SetOpenError(openErr)

	err := f.app.Run(context.Background())
	if !errors.Is(err, openErr) {
		t.Fatalf("Run() error = %v, want %v", err, openErr)
	}

	if got := f.display.Shown(); got != 0 {
		t.Errorf("frames shown = %d, want 0", got)
	}
	f.assertReleased(t)
}

func TestApp_Run_Cancelled(t *testing.T) {
	f := newFixture(t, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.app.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := f.display.Shown(); got != 0 {
		t.Errorf("frames shown = %d, want 0", got)
	}
	f.assertReleased(t)
}

func TestApp_Step_NoHand(t *testing.T) {
	f := newFixture(t, true)
	f.camera.Open()

	result, err := f.app.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	if diff := cmp.Diff(Result{}, result); diff != "" {
		t.Errorf("Step() mismatch (-want +got):\n%s", diff)
	}

	shown := f.display.Last()
	if got := shown.GetUCharAt(0, (shown.Cols()-1)*3); got != 255 {
		t.Errorf("mirrored blue pixel = %d, want 255", got)
	}
	if got := shown.GetUCharAt(0, 0); got != 0 {
		t.Errorf("original corner pixel = %d, want 0 after mirroring", got)
	}
	if got := greenPixels(t, shown); got != 0 {
		t.Errorf("frame without a hand has %d overlay pixels", got)
	}
}

func TestApp_Step_Classifies(t *testing.T) {
	tests := []struct {
		name string
		hand detector.HandLandmarks
		want gesture.Label
	}{
		{"closed fist", detector.ClosedFistLandmarks(), gesture.NotOK},
		{"wave", detector.WaveLandmarks(), gesture.Bye},
		{"open palm", detector.OpenPalmLandmarks(), gesture.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true)
			f.camera.Open()
			f.detector.SetHands([]detector.HandLandmarks{tt.hand})

			result, err := f.app.Step()
			if err != nil {
				t.Fatalf("Step() error = %v", err)
			}

			want := Result{Hands: 1, Label: tt.want}
			if diff := cmp.Diff(want, result); diff != "" {
				t.Errorf("Step() mismatch (-want +got):\n%s", diff)
			}

			if got := greenPixels(t, f.display.Last()); got == 0 {
				t.Error("caption not drawn")
			}
			if _, hands := f.app.Stats(); hands != 1 {
				t.Errorf("Stats() hand frames = %d, want 1", hands)
			}
		})
	}
}

func TestApp_Step_FirstHandOnly(t *testing.T) {
	f := newFixture(t, true)
	f.camera.Open()
	f.detector.SetHands([]detector.HandLandmarks{detector.WaveLandmarks(), detector.ClosedFistLandmarks()})

	result, err := f.app.Step()
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	want := Result{Hands: 2, Label: gesture.Bye}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("Step() mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_Step_DetectorError(t *testing.T) {
	f := newFixture(t, true)
	f.camera.Open()
	f.detector.SetHands([]detector.HandLandmarks{detector.WaveLandmarks()})
	f.detector.SetError(errors.New("service crashed"))

	result, err := f.app.Step()
	if err != nil {
		t.Fatalf("Step() error = %v, detection errors must not end the loop", err)
	}
	if result.Label != "" {
		t.Errorf("Step() label = %q, want none", result.Label)
	}
	if f.display.Shown() != 1 {
		t.Errorf("frames shown = %d, want 1", f.display.Shown())
	}
}

// rgbProbe records the first pixel of the last row-0 column it is given.
type rgbProbe struct {
	pixel []byte
}

func (p *rgbProbe) Detect(frame *gocv.Mat) ([]detector.HandLandmarks, error) {
	col := frame.Cols() - 1
	p.pixel = []byte{
		frame.GetUCharAt(0, col*3),
		frame.GetUCharAt(0, col*3+1),
		frame.GetUCharAt(0, col*3+2),
	}
	return nil, nil
}

func (p *rgbProbe) Close() error { return nil }

func TestApp_Step_DetectorSeesMirroredRGB(t *testing.T) {
	frame := testFrame()
	defer frame.Close()

	probe := &rgbProbe{}
	display := render.NewMockDisplay()
	defer display.Release()

	cam := capture.NewMockCamera([]*gocv.Mat{frame}, true)
	cam.Open()

	a := New(DefaultConfig(), cam, probe, display)
	if _, err := a.Step(); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	// Blue in BGR is (255,0,0); in RGB it is (0,0,255), now in the right-most column.
	if diff := cmp.Diff([]byte{0, 0, 255}, probe.pixel); diff != "" {
		t.Errorf("detector pixel mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New(Config{}, capture.NewMockCamera(nil, false), nil, render.NewMockDisplay())

	if a.config.QuitKey != 'q' {
		t.Errorf("QuitKey = %q, want 'q'", rune(a.config.QuitKey))
	}
	if a.config.KeyPollDelay <= 0 {
		t.Errorf("KeyPollDelay = %v, want positive", a.config.KeyPollDelay)
	}
	if a.Session() == "" {
		t.Error("Session() is empty")
	}
	if other := New(Config{}, capture.NewMockCamera(nil, false), nil, render.NewMockDisplay()); other.Session() == a.Session() {
		t.Error("two apps share a session id")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CameraID != 0 {
		t.Errorf("CameraID = %d, want 0", cfg.CameraID)
	}
	if cfg.WindowTitle != "Sign Language to Text Converter" {
		t.Errorf("WindowTitle = %q", cfg.WindowTitle)
	}
}

// greenPixels counts pixels in the caption area with a green channel set.
func greenPixels(t *testing.T, frame *gocv.Mat) int {
	t.Helper()

	region := frame.Region(image.Rect(0, 0, 200, render.LabelOrigin.Y+10))
	defer region.Close()

	channels := gocv.Split(region)
	for _, c := range channels {
		defer c.Close()
	}
	return gocv.CountNonZero(channels[1])
}
