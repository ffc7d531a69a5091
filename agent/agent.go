package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avelloso/reactant/config"
	"github.com/avelloso/reactant/decision"
	"github.com/avelloso/reactant/errors"
	"github.com/avelloso/reactant/llm"
	"github.com/avelloso/reactant/scaffold"
	"github.com/avelloso/reactant/session"
	"github.com/avelloso/reactant/tools"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SystemPrompt is the fixed system instruction seeded into every
// conversation. It defines the three modes and the JSON decision format the
// model must answer with.
const SystemPrompt = `You are a React expert assistant with three modes:
1. SCAFFOLDING: Guides through app creation
2. TOOLS: Uses available functions
3. QA: Answers React questions

Respond in strict JSON format:
{
  "mode": "SCAFFOLDING|TOOLS|QA",
  "response": "User message",
  "function": "Tool name (if TOOLS)",
  "parameters": {"key": "value"}
}

Scaffolding Flow:
1. Ask framework (React, React-SWC, Preact)
2. Ask variant (JavaScript/TypeScript)
3. Ask project name
4. Generate command

Tool Parameters:
- get_weather: {"city": "New York"}
- run_command: {"cmd": "ls -la"}
- read_file: {"file_path": "src/App.js"}
- write_file: {"file_path": "test.txt", "content": "Hello"}

Examples:
User: Create React app
-> {"mode": "SCAFFOLDING", "response": "Which framework? (React, React-SWC, Preact)"}

User: React
-> {"mode": "SCAFFOLDING", "response": "JavaScript or TypeScript?"}

User: TypeScript
-> {"mode": "SCAFFOLDING", "response": "Project name?"}

User: my-app
-> {"mode": "TOOLS", "function": "run_command", "parameters": {"cmd": "npm create vite@latest my-app --template react-ts"}, "response": "Creating app..."}`

// resultLimit caps how much tool output is surfaced to the user per turn.
const resultLimit = 200

// Callbacks let a front end decide how agent events reach the user. The
// processing loop itself stays front-end agnostic.
type Callbacks struct {
	OnAssistantMessage func(message string)
	OnToolCall         func(name string, params map[string]string)
	OnToolResult       func(name string, result string)
	OnWarning          func(warning string)
}

// Agent is the orchestrator: it owns the conversation history and the one
// scaffolding session, routes each turn to the scaffold or the LLM, and
// dispatches tool calls.
type Agent struct {
	Config   *config.Config
	History  *session.History
	LLM      llm.Client
	Registry *tools.Registry

	scaffold *scaffold.Session
	logger   *zap.Logger
}

// New creates an agent with a fresh history seeded with the system
// instruction.
func New(cfg *config.Config, client llm.Client, registry *tools.Registry, logger *zap.Logger) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{
		Config:   cfg,
		History:  session.NewHistory(SystemPrompt),
		LLM:      client,
		Registry: registry,
		logger:   logger,
	}
}

// ProcessUserInput handles one turn. It returns quit=true when the user asked
// to exit. Errors are limited to LLM transport failures; everything else is
// surfaced through the callbacks and the conversation continues.
func (a *Agent) ProcessUserInput(ctx context.Context, input string, cb Callbacks) (quit bool, err error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false, nil
	}

	turnID := uuid.NewString()
	a.logger.Debug("processing turn",
		zap.String("turn_id", turnID),
		zap.String("input", input),
		zap.Int("history_len", a.History.Len()))

	// Control words are handled locally, before any LLM involvement.
	switch strings.ToLower(input) {
	case "exit":
		return true, nil
	case "new":
		if a.scaffold == nil {
			a.scaffold = scaffold.NewSession()
		}
		cb.OnAssistantMessage(a.scaffold.Start())
		return false, nil
	}

	// While scaffolding is active the turn is consumed entirely by it; the
	// LLM is never consulted.
	if a.scaffold != nil && a.scaffold.Active() {
		a.advanceScaffold(ctx, turnID, input, cb)
		return false, nil
	}

	return false, a.llmTurn(ctx, turnID, input, cb)
}

// advanceScaffold feeds one answer into the scaffolding session and, once
// the command is synthesized, executes it through the registry.
func (a *Agent) advanceScaffold(ctx context.Context, turnID, input string, cb Callbacks) {
	text, done := a.scaffold.Advance(input)
	if !done {
		cb.OnAssistantMessage(text)
		return
	}

	a.logger.Debug("scaffold command synthesized",
		zap.String("turn_id", turnID),
		zap.String("command", text))

	params := map[string]string{"cmd": text}
	cb.OnToolCall("run_command", params)
	result, err := a.Registry.Invoke(ctx, "run_command", params)
	if err != nil {
		cb.OnWarning(err.Error())
		return
	}
	cb.OnToolResult("run_command", truncate(result))
}

// llmTurn sends the history to the model, parses the decision, and
// dispatches tools when asked to.
func (a *Agent) llmTurn(ctx context.Context, turnID, input string, cb Callbacks) error {
	a.History.Add(session.RoleUser, input)

	cctx, cancel := context.WithTimeout(ctx, time.Duration(a.Config.LLMTimeoutSeconds)*time.Second)
	defer cancel()

	resp, err := a.LLM.Chat(cctx, a.History.Messages())
	if err != nil {
		return errors.Wrapf(err, "LLM chat failed")
	}

	// The raw assistant text goes into history exactly as produced, even
	// when it fails to parse. The model sees its own words next turn.
	a.History.Add(session.RoleAssistant, resp.Content)

	d, err := decision.Parse(resp.Content)
	if err != nil {
		a.logger.Debug("decision parse failed",
			zap.String("turn_id", turnID),
			zap.Error(err))
		cb.OnWarning("Invalid response format")
		return nil
	}

	cb.OnAssistantMessage(d.Response)

	if d.Mode == decision.ModeTools {
		a.dispatch(ctx, turnID, d, cb)
	}
	return nil
}

// dispatch executes the decision's tool request. Absent or unknown tool
// names warn instead of crashing.
func (a *Agent) dispatch(ctx context.Context, turnID string, d *decision.Decision, cb Callbacks) {
	if d.Function == "" {
		cb.OnWarning("Invalid tool request")
		return
	}
	if _, ok := a.Registry.Get(d.Function); !ok {
		cb.OnWarning(fmt.Sprintf("Invalid tool request: unknown tool '%s'", d.Function))
		return
	}

	a.logger.Debug("dispatching tool",
		zap.String("turn_id", turnID),
		zap.String("tool", d.Function))

	cb.OnToolCall(d.Function, d.Parameters)
	result, err := a.Registry.Invoke(ctx, d.Function, d.Parameters)
	if err != nil {
		cb.OnWarning(err.Error())
		return
	}
	cb.OnToolResult(d.Function, truncate(result))
}

// truncate caps result text at resultLimit runes.
func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= resultLimit {
		return s
	}
	return string(runes[:resultLimit]) + "..."
}
