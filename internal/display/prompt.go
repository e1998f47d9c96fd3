package display

import (
	"context"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/sink"
)

// Key codes understood by NamePrompt, after masking to the low byte.
const (
	KeyBackspace = 8
	KeyLineFeed  = 10
	KeyEnter     = 13
	KeyEscape    = 27
	KeyDelete    = 127
)

const (
	// MaxNameLength caps how many characters the prompt accepts.
	MaxNameLength = 32

	promptPollDelay = 100
	promptScale     = 0.9
)

var (
	promptBox       = image.Rect(40, 180, 600, 300)
	promptFill      = color.RGBA{R: 0, G: 0, B: 0, A: 0}
	promptTextColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
)

// Screen shows images and reads keys. *gocv.Window satisfies it.
type Screen interface {
	IMShow(img gocv.Mat)
	WaitKey(delay int) int
}

// NamePrompt asks for the operator's name in a dialog drawn over the feed
// window. Typed characters are echoed as they arrive: Enter accepts the
// answer, Esc cancels it with an empty answer and Backspace edits. Only
// printable ASCII is accepted, since the Hershey fonts cannot draw more.
type NamePrompt struct {
	screen   Screen
	backdrop *gocv.Mat
	delay    int
}

// NewNamePrompt creates a prompt drawn over backdrop, or over a blank frame
// when backdrop is nil or empty.
func NewNamePrompt(screen Screen, backdrop *gocv.Mat) *NamePrompt {
	return &NamePrompt{
		screen:   screen,
		backdrop: backdrop,
		delay:    promptPollDelay,
	}
}

// Prompt implements sink.Prompter. It blocks until Enter or Esc is pressed or
// ctx is cancelled.
func (p *NamePrompt) Prompt(ctx context.Context) (string, error) {
	var name []byte
	p.render(string(name))

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key := p.screen.WaitKey(p.delay)
		if key < 0 {
			continue
		}

		key &= 0xFF
		switch {
		case key == KeyEnter || key == KeyLineFeed:
			return string(name), nil
		case key == KeyEscape:
			return "", nil
		case key == KeyBackspace || key == KeyDelete:
			if len(name) > 0 {
				name = name[:len(name)-1]
			}
		case key >= ' ' && key <= '~':
			if len(name) < MaxNameLength {
				name = append(name, byte(key))
			}
		default:
			continue
		}
		p.render(string(name))
	}
}

// render shows the dialog with the answer typed so far.
func (p *NamePrompt) render(answer string) {
	var canvas gocv.Mat
	if p.backdrop != nil && !p.backdrop.Empty() {
		canvas = p.backdrop.Clone()
	} else {
		canvas = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
	}
	defer canvas.Close()

	gocv.Rectangle(&canvas, promptBox, promptFill, -1)
	gocv.Rectangle(&canvas, promptBox, promptTextColor, 2)

	origin := promptBox.Min.Add(image.Pt(20, 45))
	gocv.PutText(&canvas, sink.PromptQuestion, origin, gocv.FontHersheySimplex, promptScale, promptTextColor, statusThickness)
	gocv.PutText(&canvas, answer+"_", origin.Add(image.Pt(0, 50)), gocv.FontHersheySimplex, promptScale, statusColor, statusThickness)

	p.screen.IMShow(canvas)
}
