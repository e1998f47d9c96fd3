package gesture

import (
	"testing"

	"github.com/ayusman/handsnap/internal/detector"
)

func TestVSign_IsTarget(t *testing.T) {
	vsign := detector.VSignLandmarks()
	thumbsUp := detector.ThumbsUpLandmarks()
	openPalm := detector.OpenPalmLandmarks()

	// Three fingers up: ring raised too.
	threeUp := detector.VSignLandmarks()
	threeUp.Points[detector.RingTip].Y = threeUp.Points[detector.RingPIP].Y - 0.1

	// Only index up.
	oneUp := detector.VSignLandmarks()
	oneUp.Points[detector.MiddleTip].Y = oneUp.Points[detector.MiddlePIP].Y + 0.05

	tests := []struct {
		name string
		hand *detector.HandLandmarks
		want bool
	}{
		{"v sign", &vsign, true},
		{"thumbs up", &thumbsUp, false},
		{"open palm", &openPalm, false},
		{"three fingers", &threeUp, false},
		{"one finger", &oneUp, false},
		{"nil hand", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (VSign{}).IsTarget(tt.hand); got != tt.want {
				t.Errorf("IsTarget() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVSign_Deterministic(t *testing.T) {
	hand := detector.VSignLandmarks()
	before := hand

	for i := 0; i < 5; i++ {
		if !(VSign{}).IsTarget(&hand) {
			t.Fatalf("call %d: expected V sign", i)
		}
	}
	if hand != before {
		t.Error("classifier must not modify its input")
	}
}

func TestFrameSignal(t *testing.T) {
	vsign := detector.VSignLandmarks()
	palm := detector.OpenPalmLandmarks()
	fist := detector.ThumbsUpLandmarks()

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  bool
	}{
		{"no hands", nil, false},
		{"empty slice", []detector.HandLandmarks{}, false},
		{"single v sign", []detector.HandLandmarks{vsign}, true},
		{"single palm", []detector.HandLandmarks{palm}, false},
		{"any hand counts", []detector.HandLandmarks{palm, vsign}, true},
		{"no matching hand", []detector.HandLandmarks{palm, fist}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FrameSignal(VSign{}, tt.hands); got != tt.want {
				t.Errorf("FrameSignal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassifierFunc(t *testing.T) {
	calls := 0
	c := ClassifierFunc(func(hand *detector.HandLandmarks) bool {
		calls++
		return hand.Handedness == "Left"
	})

	left := detector.OpenPalmLandmarks()
	left.Handedness = "Left"

	if !FrameSignal(c, []detector.HandLandmarks{detector.OpenPalmLandmarks(), left}) {
		t.Error("expected left hand to match")
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}
