package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/agno/genai/llm"
	"github.com/viant/agno/genai/llm/provider/base"
	"github.com/viant/agno/genai/prompt"
	elog "github.com/viant/agno/internal/log"
)

// ErrNoModel is returned when the translator has no model.
var ErrNoModel = errors.New("LLM model was not configured")

// Translator turns a free-text command into an Action with a single model call.
type Translator struct {
	model    llm.Model
	prompt   *prompt.Prompt
	options  llm.Options
	jsonMode bool
}

type Option func(t *Translator)

// WithPrompt replaces the built-in template.
func WithPrompt(p *prompt.Prompt) Option {
	return func(t *Translator) {
		if p != nil {
			t.prompt = p
		}
	}
}

// WithOptions sets generation options.
func WithOptions(options llm.Options) Option {
	return func(t *Translator) { t.options = options }
}

// WithJSONMode requests a JSON response type when the model supports it.
func WithJSONMode(enabled bool) Option {
	return func(t *Translator) { t.jsonMode = enabled }
}

// New creates a translator for model.
func New(model llm.Model, options ...Option) *Translator {
	ret := &Translator{model: model, prompt: prompt.Default()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Translate renders the prompt for command and tool keys, asks the model once
// and parses its answer. A parse failure returns *InvalidJSONError.
func (t *Translator) Translate(ctx context.Context, command string, tools []string) (*Action, error) {
	if t == nil || t.model == nil {
		return nil, ErrNoModel
	}
	text, err := t.prompt.Generate(ctx, &prompt.Binding{Command: command, Tools: tools})
	if err != nil {
		return nil, fmt.Errorf("failed to render prompt: %w", err)
	}
	options := t.options
	if t.jsonMode && t.model.Implements(base.CanUseJSONMode) {
		options.ResponseMIMEType = "application/json"
	}
	request := &llm.GenerateRequest{
		Messages: []llm.Message{llm.NewUserMessage(text)},
		Options:  &options,
	}
	elog.Publish(ctx, elog.LLMInput, request)
	response, err := t.model.Generate(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to generate: %w", err)
	}
	elog.Publish(ctx, elog.LLMOutput, response)
	return ParseAction(response.Text())
}
