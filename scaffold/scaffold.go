// Package scaffold implements the guided, LLM-independent dialogue that
// collects the three answers needed to synthesize a Vite project-creation
// command: framework, variant, and project name.
package scaffold

import (
	"fmt"
	"strings"
)

// Prompts shown as each answer is collected.
const (
	PromptFramework   = "Which framework? (React, React-SWC, Preact)"
	PromptVariant     = "JavaScript or TypeScript?"
	PromptProjectName = "Project name?"
)

// templates maps (framework, variant) pairs to Vite template suffixes. Pairs
// outside the table fall back to "react" rather than erroring; the scaffold
// never rejects input.
var templates = map[[2]string]string{
	{"react", "javascript"}:     "react",
	{"react", "typescript"}:     "react-ts",
	{"react-swc", "javascript"}: "react-swc",
	{"react-swc", "typescript"}: "react-swc-ts",
}

// Session is one pass through the scaffolding dialogue. Fields fill strictly
// left to right; once the project name lands the session deactivates and the
// command is ready.
type Session struct {
	active      bool
	framework   string
	variant     string
	projectName string
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// Active reports whether the session is still collecting answers.
func (s *Session) Active() bool {
	return s.active
}

// Start resets every field and activates the session. Starting over a
// mid-flow session discards the stale answers.
func (s *Session) Start() string {
	*s = Session{active: true}
	return PromptFramework
}

// Advance consumes one line of user input, fills the next unset field, and
// returns either the next prompt or the finished command. done is true once
// the project name has been set; the returned text is then the synthesized
// shell command.
func (s *Session) Advance(input string) (text string, done bool) {
	switch {
	case s.framework == "":
		s.framework = strings.ToLower(input)
		return PromptVariant, false
	case s.variant == "":
		s.variant = strings.ToLower(input)
		return PromptProjectName, false
	default:
		s.projectName = input
		s.active = false
		return s.command(), true
	}
}

// command resolves the template suffix and renders the scaffolding command.
func (s *Session) command() string {
	template, ok := templates[[2]string{s.framework, s.variant}]
	if !ok {
		template = "react"
	}
	return fmt.Sprintf("npm create vite@latest %s --template %s", s.projectName, template)
}
