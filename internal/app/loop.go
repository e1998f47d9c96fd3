package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/capture"
	"github.com/ayusman/handsnap/internal/debounce"
	"github.com/ayusman/handsnap/internal/gesture"
	"github.com/ayusman/handsnap/internal/sink"
)

// Run opens the camera and processes frames until the quit key is pressed or
// ctx is cancelled, returning nil in both cases. A camera failure ends the
// loop with an error wrapping ErrFrameSource.
//
// Each iteration:
//  1. Read a frame and mirror it
//  2. Detect hands; a detector error counts as no hands
//  3. Classify and step the debounce machine
//  4. Dispatch the effect (speech, capture, preview)
//  5. Draw the status and poll the quit key
//
// The announcement, the name prompt and the preview block the loop; frames
// are not read while they run.
func (a *App) Run(ctx context.Context) error {
	if err := a.config.Camera.Open(); err != nil {
		return fmt.Errorf("%w: %w", ErrFrameSource, err)
	}
	log.Printf("Capture loop started (hold %s, %d fps)", a.machine.Config().Hold, a.config.Camera.FPS())

	for {
		if ctx.Err() != nil {
			log.Printf("Capture loop stopped after %d frames", a.frames)
			return nil
		}

		frame, err := a.config.Camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrFrameSource, err)
		}

		quit := a.processFrame(ctx, frame)
		frame.Close()

		if quit {
			log.Printf("Quit key pressed after %d frames", a.frames)
			return nil
		}
	}
}

// processFrame runs one iteration on frame and reports whether the quit key
// was pressed.
func (a *App) processFrame(ctx context.Context, frame *gocv.Mat) bool {
	a.frames++

	if a.config.Mirror {
		capture.Mirror(frame)
	}

	now := a.config.Clock.Now()

	hands, err := a.config.Detector.Detect(frame)
	if err != nil {
		log.Printf("Error detecting hands: %v", err)
		hands = nil
	}

	present := gesture.FrameSignal(a.config.Classifier, hands)
	effect := a.machine.Step(present, now)
	a.dispatch(ctx, effect, frame, now)

	status := debounce.Status(a.machine.Config(), a.machine.State(), now, a.lastIdentifier)
	a.config.Display.Show(frame, hands, status)

	key := a.config.Display.PollKey(a.config.KeyDelay)
	return key >= 0 && rune(key&0xFF) == a.config.QuitKey
}

// dispatch performs the side effects of a transition. Failures are logged and
// never fed back into the machine.
func (a *App) dispatch(ctx context.Context, effect debounce.Effect, frame *gocv.Mat, now time.Time) {
	switch effect {
	case debounce.EffectStartCountdown:
		log.Printf("V sign detected, countdown started")
		if err := a.config.Speaker.Say(ctx, debounce.Announcement(a.machine.Config())); err != nil {
			log.Printf("Announcement failed: %v", err)
		}
		// The hold is timed from the end of the announcement.
		a.machine.Restart(a.config.Clock.Now())

	case debounce.EffectCancel:
		log.Printf("V sign lost, countdown cancelled")

	case debounce.EffectCapture:
		a.capture(ctx, frame, now)

	case debounce.EffectReset:
		log.Printf("V sign released, ready for next selfie")
	}
}

func (a *App) capture(ctx context.Context, frame *gocv.Mat, now time.Time) {
	a.captures++

	rec, err := a.config.Sink.Capture(ctx, sink.Event{
		Timestamp: now,
		Frame:     frame.Clone(),
	})
	if rec.Username != "" {
		a.lastIdentifier = rec.Username
	}
	if err != nil {
		log.Printf("Capture failed: %v", err)
	}

	if rec.Path == "" || a.config.Preview <= 0 {
		return
	}
	if err := a.config.Display.Preview(rec.Path, a.config.Preview); err != nil {
		log.Printf("Preview failed: %v", err)
	}
}
