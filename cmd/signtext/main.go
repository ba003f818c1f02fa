package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayusman/signtext/internal/app"
	"github.com/ayusman/signtext/internal/capture"
	"github.com/ayusman/signtext/internal/detector"
	"github.com/ayusman/signtext/internal/render"
)

func main() {
	fmt.Println("Sign Language to Text Converter")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := app.DefaultConfig()

	// The window is created here so it lives on the main goroutine.
	a := app.New(
		cfg,
		capture.NewCamera(cfg.CameraID),
		app.NewDetector(detector.DefaultConfig()),
		render.NewWindow(cfg.WindowTitle),
	)

	if err := a.Run(ctx); err != nil {
		log.Printf("Capture ended: %v", err)
	}
}
