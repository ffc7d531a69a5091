// Package llm abstracts the completion providers behind a single Chat
// boundary. The agent sends the whole ordered history every turn and gets one
// opaque text blob back; the decision protocol lives in the system
// instruction, not in provider-native tool calling.
package llm

import (
	"context"

	"github.com/avelloso/reactant/session"
)

// Client is the interface for interacting with a completion provider.
type Client interface {
	Chat(ctx context.Context, messages []session.Message) (*session.Message, error)
}

// MockClient returns scripted responses, then a canned QA decision once the
// script runs out. Used for tests and for running without any provider
// configured.
type MockClient struct {
	Responses []string
	Calls     int
}

func (m *MockClient) Chat(ctx context.Context, messages []session.Message) (*session.Message, error) {
	content := `{"mode": "QA", "response": "I am a mock model with no provider configured."}`
	if m.Calls < len(m.Responses) {
		content = m.Responses[m.Calls]
	}
	m.Calls++
	return &session.Message{Role: session.RoleAssistant, Content: content}, nil
}
