// Package speech speaks short announcements through a local synthesizer.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoSynthesizer is returned when no speech command can be found.
var ErrNoSynthesizer = errors.New("speech: no synthesizer available")

// Speaker speaks text aloud. Say blocks until the text has been spoken.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// knownCommands are tried in order when no command is configured.
var knownCommands = []string{"say", "espeak-ng", "espeak", "spd-say"}

// CommandSpeaker runs an external synthesizer with the text as its last argument.
type CommandSpeaker struct {
	path string
	args []string
}

// NewCommandSpeaker creates a speaker for the given command line, for example
// "espeak -s 150". An empty command selects the first synthesizer found on PATH.
func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) > 0 {
		path, err := exec.LookPath(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSynthesizer, err)
		}
		return &CommandSpeaker{path: path, args: fields[1:]}, nil
	}

	for _, name := range knownCommands {
		if path, err := exec.LookPath(name); err == nil {
			return &CommandSpeaker{path: path}, nil
		}
	}
	return nil, ErrNoSynthesizer
}

// Path returns the resolved synthesizer executable.
func (s *CommandSpeaker) Path() string {
	return s.path
}

// Say runs the synthesizer and waits for it to finish.
func (s *CommandSpeaker) Say(ctx context.Context, text string) error {
	args := append(append([]string{}, s.args...), text)
	cmd := exec.CommandContext(ctx, s.path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech: %s: %w: %s", s.path, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Silent discards all text.
type Silent struct{}

// Say implements Speaker.
func (Silent) Say(context.Context, string) error {
	return nil
}

// New returns a CommandSpeaker for command, or Silent with the lookup error when
// no synthesizer is available.
func New(command string) (Speaker, error) {
	s, err := NewCommandSpeaker(command)
	if err != nil {
		return Silent{}, err
	}
	return s, nil
}
