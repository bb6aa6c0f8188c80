package base

import (
	"net/http"
	"time"
)

// Config holds client parameters shared by provider clients.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Model      string
	Timeout    time.Duration

	// UsageListener receives token usage for each successful call.
	UsageListener UsageListener
}

// ClientOption mutates Config.
type ClientOption func(*Config)

// WithBaseURL overrides the default endpoint of the provider.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Config) {
		if baseURL != "" {
			c.BaseURL = baseURL
		}
	}
}

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithModel selects the model name.
func WithModel(model string) ClientOption {
	return func(c *Config) {
		if model != "" {
			c.Model = model
		}
	}
}

// WithTimeout sets the per request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithUsageListener registers a callback to receive token usage metrics.
func WithUsageListener(l UsageListener) ClientOption {
	return func(c *Config) {
		c.UsageListener = l
	}
}

const (
	// CanUseJSONMode reports that the provider honours a JSON response MIME type.
	CanUseJSONMode = "can-use-json-mode"
)
