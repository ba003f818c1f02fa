package gesture

import (
	"math"

	"github.com/ayusman/signtext/internal/detector"
)

// Thresholds are fractions of frame width or height in normalized coordinates.
const (
	// AlignThreshold is the vertical gap under which thumb and index tips form a loop.
	AlignThreshold = 0.02
	// SpreadThreshold separates "near the thumb" from "far from the thumb".
	SpreadThreshold = 0.1
	// WaveThreshold is the vertical gap under which thumb and index count as level.
	WaveThreshold = 0.05
)

// tips holds the landmarks the rules look at.
type tips struct {
	thumb, thumbIP, index, middle, ring, pinky detector.Point3D
}

func (t tips) fingers() [4]detector.Point3D {
	return [4]detector.Point3D{t.index, t.middle, t.ring, t.pinky}
}

func (t tips) all() [5]detector.Point3D {
	return [5]detector.Point3D{t.thumb, t.index, t.middle, t.ring, t.pinky}
}

// rule pairs a label with the pose test that selects it.
type rule struct {
	label Label
	match func(t tips) bool
}

// rules are evaluated in order and the first match wins. Several predicates
// overlap, so the order decides the result.
var rules = []rule{
	{Up, func(t tips) bool {
		return t.thumb.Y < t.thumbIP.Y && t.index.Y < t.thumb.Y
	}},
	{Down, func(t tips) bool {
		return t.thumb.Y > t.thumbIP.Y && t.index.Y > t.thumb.Y
	}},
	{OK, func(t tips) bool {
		return math.Abs(t.thumb.Y-t.index.Y) < AlignThreshold && t.thumb.X < t.index.X
	}},
	{NotOK, func(t tips) bool {
		for _, f := range t.fingers() {
			if !(math.Abs(t.thumb.Y-f.Y) > SpreadThreshold) {
				return false
			}
		}
		return true
	}},
	{Left, func(t tips) bool {
		return increasing(t.all(), func(p detector.Point3D) float64 { return p.X })
	}},
	{Right, func(t tips) bool {
		return decreasing(t.all(), func(p detector.Point3D) float64 { return p.X })
	}},
	{Stop, func(t tips) bool {
		for _, f := range t.fingers() {
			if !(math.Abs(t.thumb.Y-f.Y) < SpreadThreshold) {
				return false
			}
		}
		return true
	}},
	{Hi, func(t tips) bool {
		return math.Abs(t.thumb.X-t.index.X) > SpreadThreshold &&
			math.Abs(t.index.Y-t.thumb.Y) < WaveThreshold
	}},
	{Bye, func(t tips) bool {
		return increasing(t.all(), func(p detector.Point3D) float64 { return p.Y })
	}},
}

// Classify returns the gesture formed by a single hand.
// It never fails: a pose that matches no rule is Unknown.
func Classify(hand detector.HandLandmarks) Label {
	t := tipsOf(&hand)
	for _, r := range rules {
		if r.match(t) {
			return r.label
		}
	}
	return Unknown
}

// Match returns every label whose rule holds for the hand, in rule order.
// Classify returns the first of these, or Unknown when the result is empty.
func Match(hand detector.HandLandmarks) []Label {
	t := tipsOf(&hand)

	var labels []Label
	for _, r := range rules {
		if r.match(t) {
			labels = append(labels, r.label)
		}
	}
	return labels
}

func tipsOf(h *detector.HandLandmarks) tips {
	return tips{
		thumb:   h.Points[detector.ThumbTip],
		thumbIP: h.Points[detector.ThumbIP],
		index:   h.Points[detector.IndexTip],
		middle:  h.Points[detector.MiddleTip],
		ring:    h.Points[detector.RingTip],
		pinky:   h.Points[detector.PinkyTip],
	}
}

// increasing reports whether coord is strictly increasing along points.
func increasing(points [5]detector.Point3D, coord func(detector.Point3D) float64) bool {
	for i := 1; i < len(points); i++ {
		if !(coord(points[i-1]) < coord(points[i])) {
			return false
		}
	}
	return true
}

// decreasing reports whether coord is strictly decreasing along points.
func decreasing(points [5]detector.Point3D, coord func(detector.Point3D) float64) bool {
	for i := 1; i < len(points); i++ {
		if !(coord(points[i-1]) > coord(points[i])) {
			return false
		}
	}
	return true
}
