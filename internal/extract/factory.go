package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/job-matcher/internal/logger"
	"go.uber.org/zap"
)

// Supported extraction providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
)

// ProviderConfig configures a single extraction provider.
type ProviderConfig struct {
	Provider     string
	Model        string
	APIKey       string
	BaseURL      string
	MaxRetries   int
	MaxLogLength int
}

// NewExtractor builds the LLM extractor for the configured provider.
// Anthropic is the default, matching the service this tool grew out of.
func NewExtractor(ctx context.Context, cfg *ProviderConfig, log *zap.Logger) (*LLMExtractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("extraction config is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider == "" {
		provider = ProviderAnthropic
	}

	var (
		generator Generator
		err       error
	)

	switch provider {
	case ProviderAnthropic:
		generator, err = NewAnthropicGenerator(cfg.APIKey, cfg.Model)
	case ProviderGemini:
		generator, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		generator, err = NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s generator: %w", provider, err)
	}

	log = logger.WithCommonFields(log, provider, generator.Model())

	return NewLLMExtractor(generator, cfg.MaxRetries, cfg.MaxLogLength, log), nil
}
