package app

import (
	"fmt"
	"log"

	"github.com/ayusman/signtext/internal/capture"
	"github.com/ayusman/signtext/internal/detector"
	"github.com/ayusman/signtext/internal/gesture"
	"github.com/ayusman/signtext/internal/render"
	"gocv.io/x/gocv"
)

// Result describes one processed frame.
type Result struct {
	Hands int           // Hands reported by the detector
	Label gesture.Label // Empty when no hand was found
	Quit  bool          // The quit key was pressed
}

// Step processes a single frame:
//  1. Read a frame; a read failure is returned and ends the loop
//  2. Mirror it horizontally
//  3. Detect hands on an RGB copy
//  4. Classify the first hand and draw its skeleton and caption
//  5. Show the frame and poll for the quit key
//
// Nothing from the frame is kept once Step returns.
func (a *App) Step() (Result, error) {
	frame, err := a.camera.ReadFrame()
	if err != nil {
		return Result{}, fmt.Errorf("read frame: %w", err)
	}
	defer frame.Close()

	if err := capture.Mirror(frame); err != nil {
		return Result{}, fmt.Errorf("mirror frame: %w", err)
	}
	a.frames++

	var result Result

	hands := a.detect(frame)
	if len(hands) > 0 {
		a.handFrames++
		hand := hands[0]

		result.Hands = len(hands)
		result.Label = gesture.Classify(hand)

		render.DrawLandmarks(frame, hand)
		render.DrawLabel(frame, result.Label.Text())
	}

	if err := a.display.Show(frame); err != nil {
		log.Printf("[%s] Error showing frame: %v", a.session, err)
	}

	result.Quit = a.display.PollKey(a.config.KeyPollDelay) == a.config.QuitKey

	return result, nil
}

// detect runs the hand detector on an RGB copy of frame. Detection errors are
// logged and treated as no hand.
func (a *App) detect(frame *gocv.Mat) []detector.HandLandmarks {
	if a.detector == nil {
		return nil
	}

	rgb, err := capture.ToRGB(frame)
	if err != nil {
		log.Printf("[%s] Error converting frame: %v", a.session, err)
		return nil
	}
	defer rgb.Close()

	hands, err := a.detector.Detect(rgb)
	if err != nil {
		log.Printf("[%s] Error detecting hands: %v", a.session, err)
		return nil
	}
	return hands
}
