package provider

import (
	"time"

	basecfg "github.com/viant/agno/genai/llm/provider/base"
)

type Options struct {
	Model         string                `yaml:"model,omitempty" json:"model,omitempty"`
	Provider      string                `yaml:"provider,omitempty" json:"provider,omitempty"`
	APIKey        string                `yaml:"-" json:"-"`
	APIKeyURL     string                `yaml:"apiKeyURL,omitempty" json:"apiKeyURL,omitempty"`
	URL           string                `yaml:"url,omitempty" json:"url,omitempty"`
	Version       string                `yaml:"version,omitempty" json:"version,omitempty"`
	Temperature   *float64              `yaml:"temperature,omitempty" json:"temperature,omitempty"`
	MaxTokens     int                   `yaml:"maxTokens,omitempty" json:"maxTokens,omitempty"`
	TimeoutSec    int                   `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	UsageListener basecfg.UsageListener `yaml:"-" json:"-"`
}

// Timeout returns the configured request timeout.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutSec) * time.Second
}
