// Package app runs the handsnap frame loop: it reads frames, detects hands,
// feeds the pose signal to the debounce machine and dispatches the resulting
// effects to speech, the capture sink and the display.
package app

import (
	"context"
	"errors"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/capture"
	"github.com/ayusman/handsnap/internal/debounce"
	"github.com/ayusman/handsnap/internal/detector"
	"github.com/ayusman/handsnap/internal/gesture"
	"github.com/ayusman/handsnap/internal/sink"
	"github.com/ayusman/handsnap/internal/speech"
	"github.com/ayusman/handsnap/internal/timeutil"
)

// ErrFrameSource is wrapped by Run when the camera cannot be opened or read.
var ErrFrameSource = errors.New("frame source failed")

// DefaultKeyDelay is how long each iteration waits for a key press, in milliseconds.
const DefaultKeyDelay = 10

// Display shows annotated frames and reads the keyboard.
// *display.Window satisfies it.
type Display interface {
	Show(frame *gocv.Mat, hands []detector.HandLandmarks, status string)
	PollKey(delay int) int
	Preview(path string, d time.Duration) error
	Close() error
}

// CaptureSink persists a capture. *sink.Sink satisfies it.
type CaptureSink interface {
	Capture(ctx context.Context, ev sink.Event) (sink.Record, error)
}

// Config holds the collaborators and settings of the frame loop.
// Camera, Detector and Sink are required; the rest have defaults.
type Config struct {
	Camera     capture.Camera
	Detector   detector.Detector
	Classifier gesture.Classifier
	Sink       CaptureSink
	Speaker    speech.Speaker
	Display    Display
	Clock      timeutil.Clock

	Debounce debounce.Config
	Mirror   bool
	QuitKey  rune
	Preview  time.Duration
	KeyDelay int
}

// App is the single-threaded capture loop.
type App struct {
	config  Config
	machine *debounce.Machine

	lastIdentifier string
	captures       int
	frames         int
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.Classifier == nil {
		config.Classifier = gesture.VSign{}
	}
	if config.Speaker == nil {
		config.Speaker = speech.Silent{}
	}
	if config.Display == nil {
		config.Display = headless{}
	}
	if config.Clock == nil {
		config.Clock = timeutil.RealClock{}
	}
	if config.Debounce.Hold <= 0 {
		config.Debounce = debounce.DefaultConfig()
	}
	if config.QuitKey == 0 {
		config.QuitKey = 'q'
	}
	if config.KeyDelay <= 0 {
		config.KeyDelay = DefaultKeyDelay
	}

	return &App{
		config:  config,
		machine: debounce.NewMachine(config.Debounce),
	}
}

// State returns the debounce state.
func (a *App) State() debounce.State {
	return a.machine.State()
}

// LastIdentifier returns the identifier of the most recent capture.
func (a *App) LastIdentifier() string {
	return a.lastIdentifier
}

// Captures returns the number of captures dispatched to the sink.
func (a *App) Captures() int {
	return a.captures
}

// Frames returns the number of frames processed.
func (a *App) Frames() int {
	return a.frames
}

// Close releases the camera, the detector and the display.
func (a *App) Close() error {
	var errs []error
	if err := a.config.Camera.Close(); err != nil {
		errs = append(errs, err)
	}
	if a.config.Detector != nil {
		if err := a.config.Detector.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.config.Display.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// headless is the Display used when none is configured: nothing is shown and
// no key is ever pressed.
type headless struct{}

func (headless) Show(*gocv.Mat, []detector.HandLandmarks, string) {}
func (headless) PollKey(int) int                                  { return -1 }
func (headless) Preview(string, time.Duration) error              { return nil }
func (headless) Close() error                                     { return nil }
