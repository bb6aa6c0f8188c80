package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/agno/genai/llm/provider"
	"github.com/viant/agno/genai/prompt"
	"github.com/viant/agno/genai/tool"
	mcpcfg "github.com/viant/agno/internal/mcp/config"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr           = "127.0.0.1:8000"
	DefaultModel          = "gemini-1.5-flash"
	DefaultGeminiKeyEnv   = "GEMINI_API_KEY"
	DefaultGithubTokenEnv = "GITHUB_TOKEN"
	DefaultEnvFile        = ".env"
	AddrEnv               = "AGNO_ADDR"
)

// Config is the service configuration.
type Config struct {
	Addr string           `yaml:"addr,omitempty" json:"addr,omitempty"`
	LLM  provider.Options `yaml:"llm,omitempty" json:"llm,omitempty"`
	MCP  mcpcfg.Server    `yaml:"mcp,omitempty" json:"mcp,omitempty"`
	// Prompt overrides the built-in translation template.
	Prompt   *prompt.Prompt `yaml:"prompt,omitempty" json:"prompt,omitempty"`
	Policy   *tool.Policy   `yaml:"policy,omitempty" json:"policy,omitempty"`
	JSONMode bool           `yaml:"jsonMode,omitempty" json:"jsonMode,omitempty"`

	// Secrets points at a scy resource holding API credentials.
	Secrets *SecretsRef `yaml:"secrets,omitempty" json:"secrets,omitempty"`

	GeminiKeyEnv   string `yaml:"geminiKeyEnv,omitempty" json:"geminiKeyEnv,omitempty"`
	GithubTokenEnv string `yaml:"githubTokenEnv,omitempty" json:"githubTokenEnv,omitempty"`
	EnvFile        string `yaml:"envFile,omitempty" json:"envFile,omitempty"`
	EventLog       string `yaml:"eventLog,omitempty" json:"eventLog,omitempty"`
}

// Init fills unset fields with defaults.
func (c *Config) Init() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = provider.ProviderGeminiAI
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.GeminiKeyEnv == "" {
		c.GeminiKeyEnv = DefaultGeminiKeyEnv
	}
	if c.GithubTokenEnv == "" {
		c.GithubTokenEnv = DefaultGithubTokenEnv
	}
	if c.EnvFile == "" {
		c.EnvFile = DefaultEnvFile
	}
	c.MCP.Init()
}

// Load builds a Config from defaults, an optional YAML document at URL,
// scy secrets and the environment, in increasing precedence. Variables
// from the env file fill only unset environment entries.
func Load(ctx context.Context, URL string) (*Config, error) {
	cfg := &Config{}
	if URL != "" {
		if err := cfg.load(ctx, URL); err != nil {
			return nil, err
		}
	}
	cfg.Init()
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return nil, err
	}
	if cfg.Secrets != nil {
		secrets, err := LoadSecrets(ctx, cfg.Secrets)
		if err != nil {
			return nil, err
		}
		secrets.Apply(cfg)
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) load(ctx context.Context, URL string) error {
	if url.Scheme(URL, "") == "" {
		URL = file.Scheme + "://" + URL
	}
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	return nil
}

func loadEnvFile(name string) error {
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("failed to load %v: %w", name, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(c.GeminiKeyEnv)); v != "" {
		c.LLM.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(c.GithubTokenEnv)); v != "" {
		c.MCP.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(AddrEnv)); v != "" {
		c.Addr = v
	}
}
