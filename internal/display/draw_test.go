package display

import (
	"image"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/handsnap/internal/detector"
)

func blankFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
}

func TestDrawHands(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	hand := detector.VSignLandmarks()
	DrawHands(&frame, []detector.HandLandmarks{hand})

	wrist := hand.Points[detector.Wrist].Pixel(frame.Cols(), frame.Rows())
	px := frame.GetVecbAt(wrist.Y, wrist.X)
	// BGR: landmarks are red.
	if px[2] != 255 || px[0] != 0 {
		t.Errorf("wrist pixel = %v, expected a red landmark dot", px)
	}

	if frame.Sum().Val2 == 0 {
		t.Error("expected connection lines to be drawn")
	}
}

func TestDrawHands_NoHands(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	DrawHands(&frame, nil)

	s := frame.Sum()
	if s.Val1 != 0 || s.Val2 != 0 || s.Val3 != 0 {
		t.Errorf("expected untouched frame, sum = %+v", s)
	}
}

func TestDrawStatus(t *testing.T) {
	frame := blankFrame()
	defer frame.Close()

	DrawStatus(&frame, "Waiting for V sign...")

	s := frame.Sum()
	if s.Val2 == 0 {
		t.Error("expected green status text")
	}
	if s.Val1 != 0 || s.Val3 != 0 {
		t.Errorf("expected only the green channel to change, sum = %+v", s)
	}

	// Text sits just above the origin baseline, inside the top-left region.
	top := frame.Region(image.Rect(0, 0, 640, 70))
	defer top.Close()
	if top.Sum().Val2 != s.Val2 {
		t.Error("expected status text inside the top band")
	}
}

func TestDraw_EmptyFrame(t *testing.T) {
	empty := gocv.NewMat()
	defer empty.Close()

	hand := detector.VSignLandmarks()
	DrawHands(&empty, []detector.HandLandmarks{hand})
	DrawStatus(&empty, "status")
	DrawHands(nil, nil)
	DrawStatus(nil, "status")
}
