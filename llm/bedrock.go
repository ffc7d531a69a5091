package llm

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/avelloso/reactant/errors"
	"github.com/avelloso/reactant/session"
)

// BedrockClient is a client for Anthropic models hosted on AWS Bedrock.
type BedrockClient struct {
	client  *bedrockruntime.Client
	modelID string
}

// NewBedrockClient creates a new BedrockClient. It requires AWS credentials
// to be configured in the environment.
func NewBedrockClient(ctx context.Context, modelID string) (*BedrockClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load AWS config")
	}
	return &BedrockClient{
		client:  bedrockruntime.NewFromConfig(cfg),
		modelID: modelID,
	}, nil
}

// anthropicRequest is the Anthropic-on-Bedrock invoke payload.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string               `json:"role"`
	Content []anthropicTextBlock `json:"content"`
}

type anthropicTextBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicTextBlock `json:"content"`
}

// buildAnthropicRequest renders the conversation as an Anthropic-on-Bedrock
// invoke payload, splitting out the system prompt.
func buildAnthropicRequest(messages []session.Message) ([]byte, error) {
	var systemPrompt string
	var bedrockMessages []anthropicMessage
	for _, msg := range messages {
		switch msg.Role {
		case session.RoleSystem:
			systemPrompt = msg.Content
		case session.RoleAssistant:
			if msg.Content == "" {
				continue
			}
			bedrockMessages = append(bedrockMessages, anthropicMessage{
				Role:    "assistant",
				Content: []anthropicTextBlock{{Type: "text", Text: msg.Content}},
			})
		default:
			bedrockMessages = append(bedrockMessages, anthropicMessage{
				Role:    "user",
				Content: []anthropicTextBlock{{Type: "text", Text: msg.Content}},
			})
		}
	}

	return json.Marshal(anthropicRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        4096,
		System:           systemPrompt,
		Messages:         bedrockMessages,
	})
}

// Chat invokes the model with the conversation rendered as an Anthropic
// messages payload.
func (b *BedrockClient) Chat(ctx context.Context, messages []session.Message) (*session.Message, error) {
	body, err := buildAnthropicRequest(messages)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create Bedrock request")
	}

	resp, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to invoke Bedrock model")
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, errors.Wrapf(err, "failed to parse Bedrock response")
	}

	var content string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}
	return &session.Message{Role: session.RoleAssistant, Content: content}, nil
}
