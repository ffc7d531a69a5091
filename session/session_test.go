package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistorySeedsSystemInstruction(t *testing.T) {
	h := NewHistory("be helpful")
	require.Equal(t, 1, h.Len())
	assert.Equal(t, RoleSystem, h.Messages()[0].Role)
	assert.Equal(t, "be helpful", h.Messages()[0].Content)
}

func TestAddPreservesOrder(t *testing.T) {
	h := NewHistory("sys")
	h.Add(RoleUser, "first")
	h.Add(RoleAssistant, "second")
	h.Add(RoleUser, "third")

	msgs := h.Messages()
	require.Equal(t, 4, len(msgs))
	assert.Equal(t, []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "second"},
		{Role: RoleUser, Content: "third"},
	}, msgs)
}
