package llm

import (
	"context"
	"testing"

	"github.com/avelloso/reactant/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientScriptedResponses(t *testing.T) {
	mock := &MockClient{Responses: []string{
		`{"mode": "QA", "response": "first"}`,
		`{"mode": "QA", "response": "second"}`,
	}}

	msgs := []session.Message{{Role: session.RoleUser, Content: "hi"}}

	resp, err := mock.Chat(context.Background(), msgs)
	require.NoError(t, err)
	assert.Equal(t, session.RoleAssistant, resp.Role)
	assert.Contains(t, resp.Content, "first")

	resp, err = mock.Chat(context.Background(), msgs)
	require.NoError(t, err)
	assert.Contains(t, resp.Content, "second")

	// Script exhausted: falls back to the canned decision.
	resp, err = mock.Chat(context.Background(), msgs)
	require.NoError(t, err)
	assert.Contains(t, resp.Content, `"mode"`)
	assert.Equal(t, 3, mock.Calls)
}

func TestNewOpenAIClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewOpenAIClient(context.Background(), "gpt-4o")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewAnthropicClientRequiresAPIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewAnthropicClient(context.Background(), "claude-sonnet-4-20250514")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestConvertMessagesToOpenAIKeepsCount(t *testing.T) {
	msgs := []session.Message{
		{Role: session.RoleSystem, Content: "sys"},
		{Role: session.RoleUser, Content: "question"},
		{Role: session.RoleAssistant, Content: `{"mode":"QA","response":"answer"}`},
		{Role: session.RoleUser, Content: "followup"},
	}
	converted := convertMessagesToOpenAI(msgs)
	assert.Equal(t, len(msgs), len(converted))
}
