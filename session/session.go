// Package session holds the in-memory conversation history for one agent
// process. History lives only as long as the process; nothing is written to
// disk.
package session

// Roles used in the conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry in the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History is the ordered conversation replayed to the LLM on every turn.
// The first entry is always the system instruction; entries are appended and
// never mutated or removed.
type History struct {
	messages []Message
}

// NewHistory creates a history seeded with the fixed system instruction.
func NewHistory(systemPrompt string) *History {
	return &History{
		messages: []Message{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Add appends a message to the history.
func (h *History) Add(role, content string) {
	h.messages = append(h.messages, Message{Role: role, Content: content})
}

// Messages returns the full ordered history. Callers must not modify the
// returned slice.
func (h *History) Messages() []Message {
	return h.messages
}

// Len returns the number of messages, including the system instruction.
func (h *History) Len() int {
	return len(h.messages)
}
