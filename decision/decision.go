// Package decision interprets the JSON object the LLM is instructed to emit
// each turn. Parsing is the one boundary where the model's output is
// validated; everything downstream can rely on the typed Decision.
package decision

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode determines how the orchestrator handles a turn: a continuing guided
// dialogue, a tool dispatch, or a plain informational answer.
type Mode string

const (
	ModeScaffolding Mode = "SCAFFOLDING"
	ModeTools       Mode = "TOOLS"
	ModeQA          Mode = "QA"
)

// FallbackResponse is shown when the model omits the response field.
const FallbackResponse = "I can help with React questions"

// Decision is the parsed, validated interpretation of one LLM response turn.
type Decision struct {
	Mode       Mode
	Response   string
	Function   string
	Parameters map[string]string
}

// ParseError reports that the model's output was not the expected JSON
// object. The raw text is preserved for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid decision format: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// rawDecision mirrors the JSON shape the system prompt demands. Parameters
// are decoded loosely because models occasionally emit numbers or booleans
// where strings were asked for.
type rawDecision struct {
	Mode       string                 `json:"mode"`
	Response   string                 `json:"response"`
	Function   string                 `json:"function"`
	Parameters map[string]interface{} `json:"parameters"`
}

// Parse turns the raw LLM output into a Decision. Malformed JSON yields a
// *ParseError; missing fields fall back to permissive defaults rather than
// failing the turn.
func Parse(raw string) (*Decision, error) {
	var rd rawDecision
	if err := json.Unmarshal([]byte(raw), &rd); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	d := &Decision{
		Mode:     parseMode(rd.Mode),
		Response: rd.Response,
		Function: rd.Function,
	}
	if d.Response == "" {
		d.Response = FallbackResponse
	}
	if len(rd.Parameters) > 0 {
		d.Parameters = make(map[string]string, len(rd.Parameters))
		for k, v := range rd.Parameters {
			switch val := v.(type) {
			case string:
				d.Parameters[k] = val
			default:
				d.Parameters[k] = fmt.Sprint(val)
			}
		}
	}
	return d, nil
}

// parseMode maps the mode string onto the tagged variant. Absent or
// unrecognized values become QA, the permissive default.
func parseMode(s string) Mode {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeScaffolding:
		return ModeScaffolding
	case ModeTools:
		return ModeTools
	case ModeQA:
		return ModeQA
	default:
		return ModeQA
	}
}
