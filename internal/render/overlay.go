// Package render draws hand overlays on video frames and shows them in a desktop window.
package render

import (
	"image"
	"image/color"

	"github.com/ayusman/signtext/internal/detector"
	"gocv.io/x/gocv"
)

// Label text style.
const (
	LabelScale     = 1.0
	LabelThickness = 2
)

// Skeleton style.
const (
	ConnectionThickness = 2
	LandmarkRadius      = 4
)

var (
	// LabelOrigin is the bottom-left corner of the gesture caption.
	LabelOrigin = image.Pt(10, 30)
	// LabelColor is green.
	LabelColor = color.RGBA{R: 0, G: 255, B: 0, A: 0}

	connectionColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	landmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

// DrawLandmarks draws the hand skeleton onto frame. Landmark coordinates are
// normalized and scaled to the frame size.
func DrawLandmarks(frame *gocv.Mat, hand detector.HandLandmarks) {
	if frame == nil || frame.Empty() {
		return
	}

	cols, rows := frame.Cols(), frame.Rows()

	for _, c := range detector.HandConnections {
		from := toPixel(hand.Points[c[0]], cols, rows)
		to := toPixel(hand.Points[c[1]], cols, rows)
		gocv.Line(frame, from, to, connectionColor, ConnectionThickness)
	}

	for _, p := range hand.Points {
		gocv.Circle(frame, toPixel(p, cols, rows), LandmarkRadius, landmarkColor, -1)
	}
}

// DrawLabel writes text at LabelOrigin.
func DrawLabel(frame *gocv.Mat, text string) {
	if frame == nil || frame.Empty() || text == "" {
		return
	}
	gocv.PutText(frame, text, LabelOrigin, gocv.FontHersheySimplex, LabelScale, LabelColor, LabelThickness)
}

// toPixel converts a normalized landmark to pixel coordinates.
func toPixel(p detector.Point3D, cols, rows int) image.Point {
	return image.Pt(int(p.X*float64(cols)), int(p.Y*float64(rows)))
}
