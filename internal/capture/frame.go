package capture

import (
	"errors"

	"gocv.io/x/gocv"
)

// flipHorizontal is the OpenCV flip code for mirroring around the y axis.
const flipHorizontal = 1

var errNoFrame = errors.New("no frame")

// Mirror flips frame horizontally in place so the preview behaves like a mirror.
func Mirror(frame *gocv.Mat) error {
	if frame == nil || frame.Empty() {
		return errNoFrame
	}

	flipped := gocv.NewMat()
	defer flipped.Close()

	gocv.Flip(*frame, &flipped, flipHorizontal)
	flipped.CopyTo(frame)

	return nil
}

// ToRGB returns an RGB copy of a BGR frame for the hand detector.
// The caller is responsible for closing the returned Mat.
func ToRGB(frame *gocv.Mat) (*gocv.Mat, error) {
	if frame == nil || frame.Empty() {
		return nil, errNoFrame
	}

	rgb := gocv.NewMat()
	gocv.CvtColor(*frame, &rgb, gocv.ColorBGRToRGB)

	return &rgb, nil
}
