package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/agno/genai/llm"
	"github.com/viant/agno/genai/llm/provider/gemini"
	"github.com/viant/scy/cred/secret"
)

// ErrMissingAPIKey is returned when no API key could be resolved.
var ErrMissingAPIKey = errors.New("LLM API key was empty")

type Factory struct {
	secrets *secret.Service
}

// CreateModel creates a new language model instance
func (f *Factory) CreateModel(ctx context.Context, options *Options) (llm.Model, error) {
	if options == nil {
		return nil, fmt.Errorf("options were nil")
	}
	if options.Provider == "" {
		return nil, fmt.Errorf("provider was empty")
	}
	switch options.Provider {
	case ProviderGeminiAI:
		apiKey, err := f.apiKey(ctx, options)
		if err != nil {
			return nil, err
		}
		opts := []gemini.ClientOption{
			gemini.WithUsageListener(options.UsageListener),
			gemini.WithBaseURL(options.URL),
			gemini.WithTimeout(options.Timeout()),
			gemini.WithMaxTokens(options.MaxTokens),
		}
		if options.Version != "" {
			opts = append(opts, gemini.WithVersion(options.Version))
		}
		if options.Temperature != nil {
			opts = append(opts, gemini.WithTemperature(*options.Temperature))
		}
		client := gemini.NewClient(apiKey, options.Model, opts...)
		if client.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %v", options.Provider)
	}
}

func (f *Factory) apiKey(ctx context.Context, options *Options) (string, error) {
	if options.APIKey != "" || options.APIKeyURL == "" {
		return options.APIKey, nil
	}
	key, err := f.secrets.GeyKey(ctx, options.APIKeyURL)
	if err != nil {
		return "", fmt.Errorf("failed to load API key %v: %w", options.APIKeyURL, err)
	}
	return key.Secret, nil
}

func New() *Factory {
	return &Factory{secrets: secret.New()}
}
