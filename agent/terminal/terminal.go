// Package terminal implements the interactive CLI front end for the
// Reactant agent: a stdin/stdout loop that survives every fault except an
// explicit exit, EOF, or an interrupt.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avelloso/reactant/agent"
)

// Terminal drives the interactive conversation loop.
type Terminal struct {
	agent *agent.Agent
	in    io.Reader
	out   io.Writer
}

// New creates a Terminal reading from stdin and writing to stdout.
func New(a *agent.Agent) *Terminal {
	return NewWithIO(a, os.Stdin, os.Stdout)
}

// NewWithIO creates a Terminal with explicit streams. Tests use this to
// script a conversation.
func NewWithIO(a *agent.Agent, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{agent: a, in: in, out: out}
}

// Run starts the loop. It returns when the user types exit, input reaches
// EOF, or ctx is cancelled (an interrupt aborts the blocking read through
// the reader goroutine).
func (t *Terminal) Run(ctx context.Context) error {
	fmt.Fprintln(t.out, "Reactant: How can I help with React today?")
	fmt.Fprintln(t.out, "Type 'exit' to quit or 'new' to create an app")
	fmt.Fprintln(t.out)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(t.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(t.out, "You: ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(t.out)
			fmt.Fprintln(t.out, "Session ended")
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(t.out)
				return nil
			}
			if t.turn(ctx, line) {
				fmt.Fprintln(t.out, "Goodbye!")
				return nil
			}
		}
	}
}

// turn processes one line of input. Any fault, including a panic from a
// malformed tool call, becomes a one-line warning so the loop continues.
func (t *Terminal) turn(ctx context.Context, line string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(t.out, "Warning: unexpected error: %v\n", r)
		}
	}()

	quit, err := t.agent.ProcessUserInput(ctx, line, t.callbacks())
	if err != nil {
		fmt.Fprintf(t.out, "Warning: %v\n", err)
	}
	return quit
}

func (t *Terminal) callbacks() agent.Callbacks {
	return agent.Callbacks{
		OnAssistantMessage: func(message string) {
			fmt.Fprintf(t.out, "Reactant: %s\n", message)
		},
		OnToolCall: func(name string, params map[string]string) {
			if cmd, ok := params["cmd"]; ok {
				fmt.Fprintf(t.out, "Executing: %s\n", cmd)
				return
			}
			fmt.Fprintf(t.out, "Executing tool `%s`\n", name)
		},
		OnToolResult: func(name string, result string) {
			fmt.Fprintf(t.out, "Result: %s\n", result)
		},
		OnWarning: func(warning string) {
			fmt.Fprintf(t.out, "Warning: %s\n", warning)
		},
	}
}
