package agno

import (
	"context"
	"fmt"

	"github.com/viant/agno/internal/config"
)

// SecretCmd encrypts credentials for the config `secrets` reference.
// Values not given as flags are taken from the loaded config and environment.
type SecretCmd struct {
	URL         string `short:"u" long:"url" description:"secrets file URL" required:"true"`
	Key         string `short:"k" long:"key" description:"encryption key URL (default blowfish://default)"`
	GeminiKey   string `long:"gemini-key" description:"Gemini API key"`
	GithubToken string `long:"github-token" description:"GitHub personal access token"`
}

func (c *SecretCmd) Execute(_ []string) error {
	ctx := context.Background()
	secrets := &config.Secrets{GeminiAPIKey: c.GeminiKey, GithubToken: c.GithubToken}
	if secrets.GeminiAPIKey == "" || secrets.GithubToken == "" {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if secrets.GeminiAPIKey == "" {
			secrets.GeminiAPIKey = cfg.LLM.APIKey
		}
		if secrets.GithubToken == "" {
			secrets.GithubToken = cfg.MCP.Token
		}
	}
	if secrets.GeminiAPIKey == "" && secrets.GithubToken == "" {
		return fmt.Errorf("no credentials to store")
	}
	ref := &config.SecretsRef{URL: c.URL, Key: c.Key}
	if err := config.StoreSecrets(ctx, ref, secrets); err != nil {
		return err
	}
	fmt.Printf("secrets stored in %v\n", c.URL)
	return nil
}
