package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const (
	defaultAnthropicModel     = "claude-3-5-sonnet-latest"
	defaultAnthropicMaxTokens = 2000
)

// AnthropicGenerator wraps the Anthropic messages API.
type AnthropicGenerator struct {
	client    *anthropic.Client
	modelName string
}

func NewAnthropicGenerator(apiKey, model string) (*AnthropicGenerator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultAnthropicModel
	}

	return &AnthropicGenerator{
		client:    anthropic.NewClient(apiKey),
		modelName: model,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns
// the first textual content block.
func (g *AnthropicGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("anthropic generator is not initialized")
	}

	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(g.modelName),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens: defaultAnthropicMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("create messages: %w", err)
	}

	for _, content := range resp.Content {
		if content.Text != nil && strings.TrimSpace(*content.Text) != "" {
			return strings.TrimSpace(*content.Text), nil
		}
	}

	return "", errors.New("anthropic api returned empty response")
}

func (g *AnthropicGenerator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
