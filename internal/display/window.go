// Package display shows the annotated camera feed and the saved-selfie preview.
package display

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/detector"
)

const (
	// MainTitle is the title of the fullscreen feed window.
	MainTitle = "Hand Gesture Selfie"
	// PreviewTitle is the title of the post-capture preview window.
	PreviewTitle = "Saved Selfie"
	// DefaultPreview is how long a saved selfie stays on screen.
	DefaultPreview = 2 * time.Second
)

// Window is the fullscreen feed window.
type Window struct {
	win  *gocv.Window
	last gocv.Mat
}

// NewWindow opens the feed window in fullscreen mode.
func NewWindow(title string) *Window {
	if title == "" {
		title = MainTitle
	}
	win := gocv.NewWindow(title)
	win.SetWindowProperty(gocv.WindowPropertyFullscreen, gocv.WindowFullscreen)
	return &Window{win: win, last: gocv.NewMat()}
}

// Show draws the hand skeletons and status onto frame and displays it.
func (w *Window) Show(frame *gocv.Mat, hands []detector.HandLandmarks, status string) {
	if frame == nil || frame.Empty() {
		return
	}
	DrawHands(frame, hands)
	DrawStatus(frame, status)
	w.win.IMShow(*frame)
	frame.CopyTo(&w.last)
}

// Prompter returns a name prompt drawn over the most recently shown frame.
func (w *Window) Prompter() *NamePrompt {
	return NewNamePrompt(w.win, &w.last)
}

// PollKey waits up to delay milliseconds for a key press and returns its code,
// or -1 if none was pressed.
func (w *Window) PollKey(delay int) int {
	return w.win.WaitKey(delay)
}

// Preview shows the image at path in its own window for d, then closes it.
// Key presses during the preview are ignored.
func (w *Window) Preview(path string, d time.Duration) error {
	img := gocv.IMRead(path, gocv.IMReadColor)
	if img.Empty() {
		img.Close()
		return fmt.Errorf("read preview %s: empty image", path)
	}
	defer img.Close()

	preview := gocv.NewWindow(PreviewTitle)
	defer preview.Close()

	preview.IMShow(img)
	preview.WaitKey(int(d / time.Millisecond))
	return nil
}

// Close destroys the window.
func (w *Window) Close() error {
	w.last.Close()
	return w.win.Close()
}
