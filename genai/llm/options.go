package llm

type Options struct {
	// Model is the model to use.
	Model string `json:"model" yaml:"model"`

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Temperature is the temperature for sampling, between 0 and 1.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// TopK is the number of tokens to consider for top-k sampling.
	TopK int `json:"top_k" yaml:"top_k"`

	// TopP is the cumulative probability for top-p sampling.
	TopP float64 `json:"top_p" yaml:"top_p"`

	// ResponseMIMEType MIME type of the generated candidate text.
	// Supported MIME types: text/plain (default), application/json.
	ResponseMIMEType string `json:"response_mime_type,omitempty" yaml:"response_mime_type,omitempty"`
}
