package capture

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MockCamera plays back pre-recorded frames for testing.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	running bool
	reads   int
	fps     int

	// OnRead, if set, is called before each frame is returned.
	OnRead func(index int)
}

// NewMockCamera creates a MockCamera over frames. With loop set, playback
// wraps around; otherwise reading past the end fails.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
	}
}

func (c *MockCamera) Open() error {
	c.running = true
	c.index = 0
	return nil
}

func (c *MockCamera) Close() error {
	c.running = false
	return nil
}

// ReadFrame returns a clone of the next frame.
func (c *MockCamera) ReadFrame() (*gocv.Mat, error) {
	if !c.running {
		return nil, ErrCameraNotOpen
	}

	if len(c.frames) == 0 {
		return nil, fmt.Errorf("%w: no frames available", ErrFrameRead)
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return nil, fmt.Errorf("%w: no more frames", ErrFrameRead)
		}
		c.index = 0
	}

	if c.OnRead != nil {
		c.OnRead(c.reads)
	}

	frame := c.frames[c.index].Clone()
	c.index++
	c.reads++

	return &frame, nil
}

func (c *MockCamera) SetFPS(fps int) {
	if fps > 0 {
		c.fps = fps
	}
}

func (c *MockCamera) FPS() int {
	if c.fps == 0 {
		return DefaultFPS
	}
	return c.fps
}

// Reads returns the number of frames handed out.
func (c *MockCamera) Reads() int {
	return c.reads
}

// SetFrames replaces the frame sequence.
func (c *MockCamera) SetFrames(frames []*gocv.Mat) {
	c.frames = frames
	c.index = 0
}
