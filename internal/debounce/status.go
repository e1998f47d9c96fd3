package debounce

import (
	"fmt"
	"math"
	"time"
)

// Status text shown on the live view.
const (
	StatusWaiting = "Waiting for V sign..."
)

// Status derives the overlay text for the current state.
// lastIdentifier is the operator identifier of the most recent capture.
func Status(cfg Config, s State, now time.Time, lastIdentifier string) string {
	switch s.Phase {
	case Countdown:
		return fmt.Sprintf("Selfie in %d...", Remaining(cfg, s, now))
	case Cooldown:
		return fmt.Sprintf("Last selfie: %s", lastIdentifier)
	default:
		return StatusWaiting
	}
}

// Remaining returns the whole seconds left in the countdown: the hold in seconds
// minus the elapsed whole seconds, never less than 1 while counting down.
func Remaining(cfg Config, s State, now time.Time) int {
	if s.Phase != Countdown {
		return 0
	}
	holdSecs := cfg.holdSeconds()
	elapsedSecs := int(s.Elapsed(now).Seconds())
	if r := holdSecs - elapsedSecs; r > 0 {
		return r
	}
	return 1
}

// Announcement returns the spoken text for a countdown start.
func Announcement(cfg Config) string {
	secs := cfg.holdSeconds()
	if secs == 1 {
		return "Hold still! Selfie in 1 second."
	}
	return fmt.Sprintf("Hold still! Selfie in %d seconds.", secs)
}

// holdSeconds is the hold rounded up to whole seconds, so a sub-second hold
// still reads as one second.
func (c Config) holdSeconds() int {
	return int(math.Ceil(c.hold().Seconds()))
}
