package gemini

import (
	"fmt"
	"net/http"
	"time"

	basecfg "github.com/viant/agno/genai/llm/provider/base"
)

// Client represents a Gemini generateContent API client
type Client struct {
	basecfg.Config
	APIKey  string
	Version string

	MaxTokens   int
	Temperature *float64
}

// NewClient creates a new Gemini client for the given API key and model name, e.g. "gemini-1.5-flash".
// The key is used as given; environment lookup belongs to the config layer.
func NewClient(apiKey, model string, options ...ClientOption) *Client {
	client := &Client{
		Config: basecfg.Config{
			HTTPClient: &http.Client{Timeout: 2 * time.Minute},
			Model:      model,
		},
		APIKey: apiKey,
	}
	for _, option := range options {
		option(client)
	}
	if client.Model == "" {
		client.Model = DefaultModel
	}
	if client.Version == "" {
		client.Version = DefaultVersion
	}
	if client.BaseURL == "" {
		client.BaseURL = fmt.Sprintf(geminiEndpoint, client.Version)
	}
	return client
}

// Implements reports supported optional features.
func (c *Client) Implements(feature string) bool {
	switch feature {
	case basecfg.CanUseJSONMode:
		return true
	}
	return false
}
