package compose

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

var errNotConfigured = errors.New("OPENAI_API_KEY not set")

// OpenAIGenerator calls the hosted chat-completion API. It is constructed
// disabled when no API key is present, so the composer degrades to its
// fallback without a network round trip.
type OpenAIGenerator struct {
	client  openai.Client
	model   string
	enabled bool
}

func NewOpenAIGenerator(model string) *OpenAIGenerator {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return &OpenAIGenerator{model: model}
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(option.WithAPIKey(key)),
		model:   model,
		enabled: true,
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.enabled {
		return "", errNotConfigured
	}
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a professional LinkedIn outreach assistant."),
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(120),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
