package display

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/detector"
)

// StatusOrigin is where the status line's baseline starts.
var StatusOrigin = image.Point{X: 50, Y: 50}

var (
	statusColor     = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	connectionColor = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	landmarkColor   = color.RGBA{R: 255, G: 0, B: 0, A: 0}
)

const (
	statusScale     = 1.0
	statusThickness = 2
	lineThickness   = 2
	landmarkRadius  = 4
)

// DrawHands draws each hand's skeleton onto frame in place.
func DrawHands(frame *gocv.Mat, hands []detector.HandLandmarks) {
	if frame == nil || frame.Empty() {
		return
	}
	w, h := frame.Cols(), frame.Rows()

	for i := range hands {
		pts := hands[i].Points
		for _, c := range detector.HandConnections {
			gocv.Line(frame, pts[c[0]].Pixel(w, h), pts[c[1]].Pixel(w, h), connectionColor, lineThickness)
		}
		for _, p := range pts {
			gocv.Circle(frame, p.Pixel(w, h), landmarkRadius, landmarkColor, -1)
		}
	}
}

// DrawStatus writes the status line onto frame in place.
func DrawStatus(frame *gocv.Mat, status string) {
	if frame == nil || frame.Empty() || status == "" {
		return
	}
	gocv.PutText(frame, status, StatusOrigin, gocv.FontHersheySimplex, statusScale, statusColor, statusThickness)
}
