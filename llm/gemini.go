package llm

import (
	"context"
	"os"

	"github.com/avelloso/reactant/errors"
	"github.com/avelloso/reactant/session"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is a client for the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
}

// NewGeminiClient creates a new GeminiClient. It requires the GEMINI_API_KEY
// environment variable to be set.
func NewGeminiClient(ctx context.Context, modelName string) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create genai client")
	}

	model := client.GenerativeModel(modelName)
	// Gemini has a native JSON output mode; use it to back up the system
	// instruction's format demand.
	model.ResponseMIMEType = "application/json"

	return &GeminiClient{model: model}, nil
}

// Chat sends the conversation to the Gemini API. The system instruction maps
// onto Gemini's SystemInstruction field; the remaining history becomes chat
// history with the last message as the new prompt.
func (g *GeminiClient) Chat(ctx context.Context, messages []session.Message) (*session.Message, error) {
	var history []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case session.RoleSystem:
			g.model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
		case session.RoleAssistant:
			history = append(history, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		default:
			history = append(history, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}
	if len(history) == 0 {
		return nil, errors.New("no messages to send to Gemini")
	}

	last := history[len(history)-1]
	chat := g.model.StartChat()
	chat.History = history[:len(history)-1]

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to send message to Gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("received an empty response from Gemini")
	}

	var content string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}
	return &session.Message{Role: session.RoleAssistant, Content: content}, nil
}
