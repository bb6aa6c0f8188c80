package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/viant/agno/genai/llm"
	"github.com/viant/agno/genai/llm/provider"
	"github.com/viant/agno/genai/render"
	"github.com/viant/agno/genai/tool"
	"github.com/viant/agno/genai/translate"
	"github.com/viant/agno/genai/usage"
	"github.com/viant/agno/internal/config"
	elog "github.com/viant/agno/internal/log"
	"github.com/viant/agno/internal/mcp/session"
)

// Session is the tool session an agent dispatches to.
type Session interface {
	tool.Caller
	Connect(ctx context.Context) error
	Connected() bool
	Close() error
}

// ModelFactory creates the model used for translation.
type ModelFactory func(ctx context.Context, options *provider.Options) (llm.Model, error)

// Agent turns free-text commands into a single tool call and renders the result.
type Agent struct {
	cfg        *config.Config
	session    Session
	factory    ModelFactory
	dispatcher *tool.Dispatcher
	usage      *usage.Aggregator

	mux        sync.RWMutex
	translator *translate.Translator
}

type Option func(a *Agent)

func WithSession(s Session) Option {
	return func(a *Agent) { a.session = s }
}

func WithModelFactory(f ModelFactory) Option {
	return func(a *Agent) { a.factory = f }
}

// New creates an agent; Start must be called before commands are processed.
func New(cfg *config.Config, options ...Option) *Agent {
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.Init()
	ret := &Agent{cfg: cfg, usage: &usage.Aggregator{}}
	if cfg.LLM.UsageListener == nil {
		cfg.LLM.UsageListener = ret.usage.OnUsage
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.session == nil {
		ret.session = session.New(&cfg.MCP)
	}
	if ret.factory == nil {
		ret.factory = provider.New().CreateModel
	}
	ret.dispatcher = tool.New(ret.session, tool.WithPolicy(cfg.Policy), tool.WithTimeout(cfg.MCP.ToolTimeout()))
	return ret
}

// Start configures the model and connects the tool session. Both steps are
// attempted; the returned error joins their failures.
func (a *Agent) Start(ctx context.Context) error {
	var errs []error
	if err := a.configureModel(ctx); err != nil {
		log.Printf("[agent] LLM not configured: %v", err)
		errs = append(errs, fmt.Errorf("llm: %w", err))
	}
	if err := a.session.Connect(ctx); err != nil {
		log.Printf("[agent] tool session not connected: %v", err)
		errs = append(errs, fmt.Errorf("mcp: %w", err))
	}
	return errors.Join(errs...)
}

func (a *Agent) configureModel(ctx context.Context) error {
	model, err := a.factory(ctx, &a.cfg.LLM)
	if err != nil {
		return err
	}
	if model == nil {
		return provider.ErrMissingAPIKey
	}
	translator := translate.New(model,
		translate.WithPrompt(a.cfg.Prompt),
		translate.WithJSONMode(a.cfg.JSONMode),
		translate.WithOptions(llm.Options{Model: a.cfg.LLM.Model, MaxTokens: a.cfg.LLM.MaxTokens}),
	)
	a.mux.Lock()
	a.translator = translator
	a.mux.Unlock()
	return nil
}

func (a *Agent) getTranslator() *translate.Translator {
	a.mux.RLock()
	defer a.mux.RUnlock()
	return a.translator
}

// Ready reports whether both the model and the tool session are available.
func (a *Agent) Ready() bool {
	return a.getTranslator() != nil && a.session.Connected()
}

// Catalog returns the tool catalog, nil before the session connects.
func (a *Agent) Catalog() *session.Catalog {
	return a.session.Catalog()
}

// Process handles one command; every failure is reported in the returned text.
func (a *Agent) Process(ctx context.Context, command string) string {
	ctx = elog.WithRequestID(ctx, elog.RequestID(ctx))
	elog.Publish(ctx, elog.CommandInput, command)
	result := a.process(ctx, command)
	elog.Publish(ctx, elog.CommandOutput, result)
	return result
}

func (a *Agent) process(ctx context.Context, command string) string {
	if !a.session.Connected() {
		return render.GlyphError + " Not connected to GitHub."
	}
	translator := a.getTranslator()
	if translator == nil {
		return fmt.Sprintf("%v The model is not configured. Check your %v.", render.GlyphError, a.cfg.GeminiKeyEnv)
	}
	action, err := translator.Translate(ctx, command, a.session.Catalog().Keys())
	if err != nil {
		var invalid *translate.InvalidJSONError
		if errors.As(err, &invalid) {
			return fmt.Sprintf("%v Error: the model returned an invalid JSON answer.\nAnswer was: %v", render.GlyphError, invalid.Raw)
		}
		return fmt.Sprintf("%v An unexpected error with the model: %v", render.GlyphError, err)
	}
	if !action.HasTool() {
		reason := action.Reason
		if reason == "" {
			reason = "I did not understand the request."
		}
		return render.GlyphAsk + " " + reason
	}
	return a.dispatcher.Dispatch(ctx, action.ToolName, action.Parameters)
}

// Usage returns token usage recorded by the model client.
func (a *Agent) Usage() *usage.Aggregator {
	return a.usage
}

// Shutdown closes the tool session.
func (a *Agent) Shutdown(_ context.Context) error {
	if totals := a.usage.Totals(); totals.Calls > 0 {
		log.Printf("[agent] %d LLM calls, %d prompt / %d completion tokens", totals.Calls, totals.PromptTokens, totals.CompletionTokens)
	}
	return a.session.Close()
}
