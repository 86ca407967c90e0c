package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/job-matcher/internal/extract"
	"github.com/job-matcher/internal/secrets"
	"github.com/job-matcher/internal/theirstack"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// buildExtractor wires the configured LLM provider into a resume
// extractor.
func buildExtractor(ctx context.Context, config *Config, logger *zap.Logger) (*extract.LLMExtractor, error) {
	if config.Extraction == nil {
		return nil, errors.New("extraction configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(config.Extraction.Provider))
	if provider == "" {
		provider = extract.ProviderAnthropic
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: fmt.Sprintf("%s api key", provider),
		File: config.Extraction.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set extraction.api-key-file or EXTRACTION_API_KEY_FILE)", err)
	}

	return extract.NewExtractor(ctx, &extract.ProviderConfig{
		Provider:     provider,
		Model:        config.Extraction.Model,
		APIKey:       apiKey,
		BaseURL:      config.Extraction.BaseURL,
		MaxRetries:   config.Extraction.MaxRetries,
		MaxLogLength: config.Extraction.MaxLogLength,
	}, logger)
}

// buildJobSource wires the TheirStack client from the configuration.
func buildJobSource(ctx context.Context, config *Config, logger *zap.Logger) (*theirstack.Client, error) {
	tokenFile := ""
	if config.TheirStack != nil {
		tokenFile = config.TheirStack.APIKeyFile
	}
	if strings.TrimSpace(tokenFile) == "" {
		tokenFile = viper.GetString("theirstack.api-key-file")
	}

	token, err := secrets.Load(secrets.Source{
		Name: "theirstack api key",
		File: tokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set theirstack.api-key-file or THEIRSTACK_API_KEY_FILE)", err)
	}

	client := theirstack.New(ctx, logger, token)

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}
	if config.TheirStack != nil {
		client.SetRateLimit(config.TheirStack.RateLimit)
		if config.TheirStack.MaxRetries > 0 {
			client.SetMaxRetries(config.TheirStack.MaxRetries)
		}
	}

	return client, nil
}
