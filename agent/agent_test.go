package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/avelloso/reactant/config"
	"github.com/avelloso/reactant/llm"
	"github.com/avelloso/reactant/scaffold"
	"github.com/avelloso/reactant/session"
	"github.com/avelloso/reactant/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures callback events for assertions.
type recorder struct {
	messages  []string
	warnings  []string
	toolCalls []string
	params    []map[string]string
	results   []string
}

func (r *recorder) callbacks() Callbacks {
	return Callbacks{
		OnAssistantMessage: func(m string) { r.messages = append(r.messages, m) },
		OnToolCall: func(name string, p map[string]string) {
			r.toolCalls = append(r.toolCalls, name)
			r.params = append(r.params, p)
		},
		OnToolResult: func(name, result string) { r.results = append(r.results, result) },
		OnWarning:    func(w string) { r.warnings = append(r.warnings, w) },
	}
}

// forbidClient fails the test if the agent consults the LLM.
type forbidClient struct {
	t *testing.T
}

func (c *forbidClient) Chat(ctx context.Context, messages []session.Message) (*session.Message, error) {
	c.t.Fatal("the LLM must not be consulted on this turn")
	return nil, nil
}

// captureTool stands in for run_command so scaffolded commands are not
// actually executed.
type captureTool struct {
	name    string
	gotArgs map[string]string
	result  string
}

func (c *captureTool) Name() string         { return c.name }
func (c *captureTool) Description() string  { return "capture tool" }
func (c *captureTool) Parameters() []string { return []string{"cmd"} }

func (c *captureTool) Execute(ctx context.Context, args map[string]string) (string, error) {
	c.gotArgs = args
	return c.result, nil
}

func testAgent(t *testing.T, client llm.Client) (*Agent, *captureTool) {
	t.Helper()
	cfg := &config.Config{
		WeatherURL:        config.DefaultWeatherURL,
		LLMTimeoutSeconds: 5,
	}
	registry := tools.NewRegistry(cfg)
	capture := &captureTool{name: "run_command", result: "ok"}
	registry.Register(capture)
	return New(cfg, client, registry, nil), capture
}

func TestExitQuitsWithoutLLMCall(t *testing.T) {
	a, _ := testAgent(t, &forbidClient{t})
	rec := &recorder{}

	quit, err := a.ProcessUserInput(context.Background(), "exit", rec.callbacks())
	require.NoError(t, err)
	assert.True(t, quit)
	assert.Empty(t, rec.messages)

	quit, err = a.ProcessUserInput(context.Background(), "EXIT", rec.callbacks())
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestEmptyInputIsNoOp(t *testing.T) {
	a, _ := testAgent(t, &forbidClient{t})
	rec := &recorder{}

	quit, err := a.ProcessUserInput(context.Background(), "   ", rec.callbacks())
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Empty(t, rec.messages)
	assert.Equal(t, 1, a.History.Len(), "history should hold only the system instruction")
}

func TestScaffoldingFlowNeverConsultsLLM(t *testing.T) {
	a, capture := testAgent(t, &forbidClient{t})
	rec := &recorder{}
	ctx := context.Background()
	cb := rec.callbacks()

	_, err := a.ProcessUserInput(ctx, "new", cb)
	require.NoError(t, err)
	_, err = a.ProcessUserInput(ctx, "React", cb)
	require.NoError(t, err)
	_, err = a.ProcessUserInput(ctx, "TypeScript", cb)
	require.NoError(t, err)
	_, err = a.ProcessUserInput(ctx, "my-app", cb)
	require.NoError(t, err)

	assert.Equal(t, []string{
		scaffold.PromptFramework,
		scaffold.PromptVariant,
		scaffold.PromptProjectName,
	}, rec.messages)
	assert.Equal(t, []string{"run_command"}, rec.toolCalls)
	assert.Equal(t, "npm create vite@latest my-app --template react-ts", capture.gotArgs["cmd"])
	assert.Equal(t, []string{"ok"}, rec.results)
	assert.Equal(t, 1, a.History.Len(), "scaffolding turns never touch the history")
}

func TestNewRestartsMidFlowScaffolding(t *testing.T) {
	a, capture := testAgent(t, &forbidClient{t})
	rec := &recorder{}
	ctx := context.Background()
	cb := rec.callbacks()

	a.ProcessUserInput(ctx, "new", cb)
	a.ProcessUserInput(ctx, "react-swc", cb)
	a.ProcessUserInput(ctx, "new", cb)
	a.ProcessUserInput(ctx, "react", cb)
	a.ProcessUserInput(ctx, "javascript", cb)
	a.ProcessUserInput(ctx, "fresh-app", cb)

	assert.Equal(t, "npm create vite@latest fresh-app --template react", capture.gotArgs["cmd"])
}

func TestQATurn(t *testing.T) {
	raw := `{"mode": "QA", "response": "React is a UI library."}`
	a, _ := testAgent(t, &llm.MockClient{Responses: []string{raw}})
	rec := &recorder{}

	quit, err := a.ProcessUserInput(context.Background(), "What is React?", rec.callbacks())
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, []string{"React is a UI library."}, rec.messages)

	msgs := a.History.Messages()
	require.Equal(t, 3, len(msgs))
	assert.Equal(t, session.RoleUser, msgs[1].Role)
	assert.Equal(t, "What is React?", msgs[1].Content)
	assert.Equal(t, session.RoleAssistant, msgs[2].Role)
	assert.Equal(t, raw, msgs[2].Content, "history keeps the raw model output, not a re-serialization")
}

func TestParseFailureWarnsAndPreservesHistory(t *testing.T) {
	a, _ := testAgent(t, &llm.MockClient{Responses: []string{
		"Sure, I can help with that!",
		`{"mode": "QA", "response": "recovered"}`,
	}})
	rec := &recorder{}
	ctx := context.Background()

	quit, err := a.ProcessUserInput(ctx, "hello", rec.callbacks())
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, []string{"Invalid response format"}, rec.warnings)
	assert.Empty(t, rec.messages)

	// The malformed text stays in history as the assistant's turn.
	msgs := a.History.Messages()
	require.Equal(t, 3, len(msgs))
	assert.Equal(t, "Sure, I can help with that!", msgs[2].Content)

	// The conversation continues.
	_, err = a.ProcessUserInput(ctx, "try again", rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, []string{"recovered"}, rec.messages)
	assert.Equal(t, 5, a.History.Len())
}

func TestToolsDispatch(t *testing.T) {
	a, capture := testAgent(t, &llm.MockClient{Responses: []string{
		`{"mode": "TOOLS", "response": "Running it...", "function": "run_command", "parameters": {"cmd": "ls -la"}}`,
	}})
	rec := &recorder{}

	_, err := a.ProcessUserInput(context.Background(), "list files", rec.callbacks())
	require.NoError(t, err)

	assert.Equal(t, []string{"Running it..."}, rec.messages)
	assert.Equal(t, []string{"run_command"}, rec.toolCalls)
	assert.Equal(t, "ls -la", capture.gotArgs["cmd"])
	assert.Equal(t, []string{"ok"}, rec.results)
}

func TestUnknownToolWarns(t *testing.T) {
	a, _ := testAgent(t, &llm.MockClient{Responses: []string{
		`{"mode": "TOOLS", "response": "Doing magic", "function": "teleport", "parameters": {"to": "Mars"}}`,
	}})
	rec := &recorder{}

	_, err := a.ProcessUserInput(context.Background(), "go", rec.callbacks())
	require.NoError(t, err)
	require.Equal(t, 1, len(rec.warnings))
	assert.Contains(t, rec.warnings[0], "teleport")
	assert.Empty(t, rec.toolCalls)
}

func TestAbsentToolNameWarns(t *testing.T) {
	a, _ := testAgent(t, &llm.MockClient{Responses: []string{
		`{"mode": "TOOLS", "response": "Hmm"}`,
	}})
	rec := &recorder{}

	_, err := a.ProcessUserInput(context.Background(), "go", rec.callbacks())
	require.NoError(t, err)
	assert.Equal(t, []string{"Invalid tool request"}, rec.warnings)
}

func TestToolResultTruncation(t *testing.T) {
	a, capture := testAgent(t, &llm.MockClient{Responses: []string{
		`{"mode": "TOOLS", "response": "Running", "function": "run_command", "parameters": {"cmd": "x"}}`,
	}})
	capture.result = strings.Repeat("a", resultLimit+50)
	rec := &recorder{}

	_, err := a.ProcessUserInput(context.Background(), "go", rec.callbacks())
	require.NoError(t, err)
	require.Equal(t, 1, len(rec.results))
	assert.Equal(t, resultLimit+3, len(rec.results[0]))
	assert.True(t, strings.HasSuffix(rec.results[0], "..."))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))

	long := strings.Repeat("x", resultLimit+1)
	assert.Equal(t, strings.Repeat("x", resultLimit)+"...", truncate(long))

	exact := strings.Repeat("x", resultLimit)
	assert.Equal(t, exact, truncate(exact))
}
