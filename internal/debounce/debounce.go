// Package debounce turns a noisy per-frame pose signal into a single confirmed
// capture per continuous pose hold.
//
// The state machine has three phases:
//
//	Idle      --pose-->    Countdown   (StartCountdown)
//	Countdown --no pose--> Idle        (Cancel)
//	Countdown --pose, held >= Hold--> Cooldown (Capture)
//	Cooldown  --no pose--> Idle        (Reset)
//
// Every other (phase, signal) pair keeps the phase and yields EffectNone.
// Transition performs no I/O; callers map the returned Effect onto speech,
// storage and display.
package debounce

import "time"

// DefaultHold is the hold threshold used when Config.Hold is not positive.
const DefaultHold = 3 * time.Second

// Phase is the debounce phase.
type Phase int

const (
	// Idle waits for the pose to appear.
	Idle Phase = iota
	// Countdown runs the hold timer while the pose stays visible.
	Countdown
	// Cooldown follows a capture until the pose is released.
	Cooldown
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Countdown:
		return "countdown"
	case Cooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Effect describes the side effect a transition asks the caller to perform.
type Effect int

const (
	// EffectNone requires no action.
	EffectNone Effect = iota
	// EffectStartCountdown is emitted when the pose first appears in Idle.
	EffectStartCountdown
	// EffectCancel is emitted when the pose is lost before the hold completes.
	EffectCancel
	// EffectCapture is emitted exactly once when the hold completes.
	EffectCapture
	// EffectReset is emitted when the pose is released after a capture.
	EffectReset
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectStartCountdown:
		return "start-countdown"
	case EffectCancel:
		return "cancel"
	case EffectCapture:
		return "capture"
	case EffectReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Config holds the state machine parameters.
type Config struct {
	// Hold is how long the pose must stay visible before a capture.
	Hold time.Duration
}

// DefaultConfig returns a Config with the default hold threshold.
func DefaultConfig() Config {
	return Config{Hold: DefaultHold}
}

func (c Config) hold() time.Duration {
	if c.Hold <= 0 {
		return DefaultHold
	}
	return c.Hold
}

// State is the debounce memory carried from one frame to the next.
// CountdownStart is set if and only if Phase is Countdown.
type State struct {
	Phase          Phase
	CountdownStart time.Time
}

// Elapsed returns how long the countdown has been running at now.
// It is zero outside Countdown and never negative.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.Phase != Countdown || now.Before(s.CountdownStart) {
		return 0
	}
	return now.Sub(s.CountdownStart)
}

// Transition computes the next state for one frame.
// present reports whether any hand in the frame holds the pose.
func Transition(cfg Config, s State, present bool, now time.Time) (State, Effect) {
	switch s.Phase {
	case Countdown:
		if !present {
			return State{Phase: Idle}, EffectCancel
		}
		if now.Sub(s.CountdownStart) >= cfg.hold() {
			return State{Phase: Cooldown}, EffectCapture
		}
		return s, EffectNone

	case Cooldown:
		if !present {
			return State{Phase: Idle}, EffectReset
		}
		return State{Phase: Cooldown}, EffectNone

	default:
		// Idle, or a corrupted phase value treated as Idle.
		if present {
			return State{Phase: Countdown, CountdownStart: now}, EffectStartCountdown
		}
		return State{Phase: Idle}, EffectNone
	}
}

// Machine holds a State and applies Transition to it frame by frame.
// It is not safe for concurrent use; the frame loop owns it.
type Machine struct {
	cfg   Config
	state State
}

// NewMachine creates a Machine in Idle.
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// Step feeds one frame's signal into the machine and returns the effect.
func (m *Machine) Step(present bool, now time.Time) Effect {
	next, effect := Transition(m.cfg, m.state, present, now)
	m.state = next
	return effect
}

// Restart moves the start of a running countdown to now. Blocking work done
// right after the countdown starts, such as the spoken announcement, must not
// count toward the hold. Outside Countdown it does nothing.
func (m *Machine) Restart(now time.Time) {
	if m.state.Phase == Countdown {
		m.state.CountdownStart = now
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Config returns the machine configuration.
func (m *Machine) Config() Config {
	return m.cfg
}
