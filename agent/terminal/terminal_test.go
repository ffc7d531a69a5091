package terminal

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/avelloso/reactant/agent"
	"github.com/avelloso/reactant/config"
	"github.com/avelloso/reactant/llm"
	"github.com/avelloso/reactant/session"
	"github.com/avelloso/reactant/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forbidClient fails the test if the agent consults the LLM.
type forbidClient struct {
	t *testing.T
}

func (c *forbidClient) Chat(ctx context.Context, messages []session.Message) (*session.Message, error) {
	c.t.Fatal("the LLM must not be consulted in this scenario")
	return nil, nil
}

// captureTool replaces run_command so tests never shell out.
type captureTool struct {
	gotArgs map[string]string
	result  string
	panics  bool
}

func (c *captureTool) Name() string         { return "run_command" }
func (c *captureTool) Description() string  { return "capture tool" }
func (c *captureTool) Parameters() []string { return []string{"cmd"} }

func (c *captureTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	if c.panics {
		panic("tool defect")
	}
	c.gotArgs = args
	return c.result, nil
}

func newTestTerminal(t *testing.T, client llm.Client, capture *captureTool, input string) (*Terminal, *bytes.Buffer) {
	t.Helper()
	cfg := &config.Config{
		WeatherURL:        config.DefaultWeatherURL,
		LLMTimeoutSeconds: 5,
	}
	registry := tools.NewRegistry(cfg)
	registry.Register(capture)

	a := agent.New(cfg, client, registry, nil)
	out := &bytes.Buffer{}
	return NewWithIO(a, strings.NewReader(input), out), out
}

func TestExitTerminatesImmediately(t *testing.T) {
	term, out := newTestTerminal(t, &forbidClient{t}, &captureTool{}, "exit\n")

	require.NoError(t, term.Run(context.Background()))
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestEOFEndsTheLoop(t *testing.T) {
	term, _ := newTestTerminal(t, &forbidClient{t}, &captureTool{}, "")
	require.NoError(t, term.Run(context.Background()))
}

func TestScaffoldingEndToEnd(t *testing.T) {
	capture := &captureTool{result: "Scaffolding project in ./my-app..."}
	input := "new\nReact\nTypeScript\nmy-app\nexit\n"
	term, out := newTestTerminal(t, &forbidClient{t}, capture, input)

	require.NoError(t, term.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Reactant: Which framework? (React, React-SWC, Preact)")
	assert.Contains(t, got, "Reactant: JavaScript or TypeScript?")
	assert.Contains(t, got, "Reactant: Project name?")
	assert.Contains(t, got, "Executing: npm create vite@latest my-app --template react-ts")
	assert.Contains(t, got, "Result: Scaffolding project in ./my-app...")
	assert.Equal(t, "npm create vite@latest my-app --template react-ts", capture.gotArgs["cmd"])
}

func TestParseFailureKeepsLoopAlive(t *testing.T) {
	client := &llm.MockClient{Responses: []string{
		"plain text, not a decision",
		`{"mode": "QA", "response": "still here"}`,
	}}
	input := "hello\nand again\nexit\n"
	term, out := newTestTerminal(t, client, &captureTool{}, input)

	require.NoError(t, term.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Warning: Invalid response format")
	assert.Contains(t, got, "Reactant: still here")
	assert.Contains(t, got, "Goodbye!")
}

func TestPanickingToolBecomesWarning(t *testing.T) {
	client := &llm.MockClient{Responses: []string{
		`{"mode": "TOOLS", "response": "Running...", "function": "run_command", "parameters": {"cmd": "x"}}`,
		`{"mode": "QA", "response": "recovered"}`,
	}}
	capture := &captureTool{panics: true}
	input := "break it\nstill alive?\nexit\n"
	term, out := newTestTerminal(t, client, capture, input)

	require.NoError(t, term.Run(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Warning: unexpected error: tool defect")
	assert.Contains(t, got, "Reactant: recovered")
	assert.Contains(t, got, "Goodbye!")
}

func TestContextCancellationEndsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &config.Config{WeatherURL: config.DefaultWeatherURL, LLMTimeoutSeconds: 5}
	a := agent.New(cfg, &forbidClient{t}, tools.NewRegistry(cfg), nil)

	// A pipe that never delivers input: only cancellation can end the loop.
	pr, pw := io.Pipe()
	defer pw.Close()
	out := &bytes.Buffer{}
	term := NewWithIO(a, pr, out)

	require.NoError(t, term.Run(ctx))
	assert.Contains(t, out.String(), "Session ended")
}
