package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/scy"
	_ "github.com/viant/scy/kms/blowfish"
)

// DefaultSecretsKey encrypts secrets files unless another key is configured.
const DefaultSecretsKey = "blowfish://default"

// SecretsRef locates an encrypted secrets document.
type SecretsRef struct {
	URL string `yaml:"url" json:"url"`
	Key string `yaml:"key,omitempty" json:"key,omitempty"`
}

func (r *SecretsRef) key() string {
	if r.Key == "" {
		return DefaultSecretsKey
	}
	return r.Key
}

// Secrets holds service credentials.
type Secrets struct {
	GeminiAPIKey string `json:"geminiApiKey,omitempty" yaml:"geminiApiKey,omitempty"`
	GithubToken  string `json:"githubToken,omitempty" yaml:"githubToken,omitempty"`
}

// Apply copies credentials into cfg.
func (s *Secrets) Apply(cfg *Config) {
	if s == nil {
		return
	}
	if s.GeminiAPIKey != "" {
		cfg.LLM.APIKey = s.GeminiAPIKey
	}
	if s.GithubToken != "" {
		cfg.MCP.Token = s.GithubToken
	}
}

// LoadSecrets reads and decrypts the secrets document.
func LoadSecrets(ctx context.Context, ref *SecretsRef) (*Secrets, error) {
	res := scy.NewResource(&Secrets{}, ref.URL, ref.key())
	secret, err := scy.New().Load(ctx, res)
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets %v: %w", ref.URL, err)
	}
	if target, ok := secret.Target.(*Secrets); ok && target != nil {
		return target, nil
	}
	ret := &Secrets{}
	if err := json.Unmarshal([]byte(secret.String()), ret); err != nil {
		return nil, fmt.Errorf("failed to decode secrets %v: %w", ref.URL, err)
	}
	return ret, nil
}

// StoreSecrets encrypts secrets into the referenced document.
func StoreSecrets(ctx context.Context, ref *SecretsRef, secrets *Secrets) error {
	res := scy.NewResource(secrets, ref.URL, ref.key())
	if err := scy.New().Store(ctx, scy.NewSecret(secrets, res)); err != nil {
		return fmt.Errorf("failed to store secrets %v: %w", ref.URL, err)
	}
	return nil
}
