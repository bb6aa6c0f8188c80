package gemini

import (
	"net/http"
	"time"

	basecfg "github.com/viant/agno/genai/llm/provider/base"
)

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { basecfg.WithBaseURL(baseURL)(&c.Config) }
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { basecfg.WithHTTPClient(httpClient)(&c.Config) }
}

func WithModel(model string) ClientOption {
	return func(c *Client) { basecfg.WithModel(model)(&c.Config) }
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { basecfg.WithTimeout(timeout)(&c.Config) }
}

func WithVersion(version string) ClientOption {
	return func(c *Client) { c.Version = version }
}

// WithTemperature sets the default sampling temperature used when a request carries none.
func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) { c.Temperature = &temperature }
}

// WithMaxTokens sets the default output token limit.
func WithMaxTokens(maxTokens int) ClientOption {
	return func(c *Client) { c.MaxTokens = maxTokens }
}

// WithUsageListener registers a callback to receive token usage information.
func WithUsageListener(l basecfg.UsageListener) ClientOption {
	return func(c *Client) { c.UsageListener = l }
}
