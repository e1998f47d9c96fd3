// Package gesture classifies hand landmarks as the capture pose.
package gesture

import (
	"github.com/ayusman/handsnap/internal/detector"
)

// Classifier decides whether a single hand forms the target pose.
// Implementations must be pure: no side effects and no memory of prior calls.
type Classifier interface {
	IsTarget(hand *detector.HandLandmarks) bool
}

// ClassifierFunc adapts a plain function to the Classifier interface.
type ClassifierFunc func(hand *detector.HandLandmarks) bool

// IsTarget calls f(hand).
func (f ClassifierFunc) IsTarget(hand *detector.HandLandmarks) bool {
	return f(hand)
}

// VSign recognizes the "V" (peace) sign: index and middle fingers extended,
// ring and pinky folded. Image Y grows downward, so an extended finger has its
// tip above (smaller Y than) its PIP joint.
type VSign struct{}

// IsTarget implements Classifier.
func (VSign) IsTarget(hand *detector.HandLandmarks) bool {
	if hand == nil {
		return false
	}
	p := hand.Points
	return p[detector.IndexTip].Y < p[detector.IndexPIP].Y &&
		p[detector.MiddleTip].Y < p[detector.MiddlePIP].Y &&
		p[detector.RingTip].Y > p[detector.RingPIP].Y &&
		p[detector.PinkyTip].Y > p[detector.PinkyPIP].Y
}

// FrameSignal reports whether any of the hands detected in a frame forms the
// target pose. No hands means no pose.
func FrameSignal(c Classifier, hands []detector.HandLandmarks) bool {
	for i := range hands {
		if c.IsTarget(&hands[i]) {
			return true
		}
	}
	return false
}
