package sink

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// PromptQuestion is the question put to the operator after a capture.
const PromptQuestion = "Please enter your name:"

// Prompter asks the operator for an identifier. Prompt blocks until an answer
// is given; the frame loop is paused meanwhile.
type Prompter interface {
	Prompt(ctx context.Context) (string, error)
}

// PromptFunc adapts a plain function to the Prompter interface.
type PromptFunc func(ctx context.Context) (string, error)

// Prompt calls f(ctx).
func (f PromptFunc) Prompt(ctx context.Context) (string, error) {
	return f(ctx)
}

// TerminalPrompter reads one line from a terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading from in and writing the
// question to out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt writes the question and reads the answer up to the end of the line.
// A final line without a newline is accepted.
func (p *TerminalPrompter) Prompt(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(p.out, PromptQuestion+" ")

	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("read name: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
