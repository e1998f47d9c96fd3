package sink

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when asked to write a frame with no pixels.
var ErrEmptyFrame = errors.New("empty frame")

// ImageWriter persists a frame to a file.
type ImageWriter interface {
	Write(path string, frame gocv.Mat) error
}

// GoCVWriter writes images with gocv.IMWrite; the format follows the extension.
type GoCVWriter struct{}

// Write implements ImageWriter.
func (GoCVWriter) Write(path string, frame gocv.Mat) error {
	if frame.Empty() {
		return ErrEmptyFrame
	}
	if !gocv.IMWrite(path, frame) {
		return fmt.Errorf("imwrite %s failed", path)
	}
	return nil
}
