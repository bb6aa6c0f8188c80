package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/viant/agno/genai/render"
	elog "github.com/viant/agno/internal/log"
	"github.com/viant/agno/internal/mcp/session"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Caller exposes a tool catalog and invokes tools by their real name.
type Caller interface {
	Catalog() *session.Catalog
	Call(ctx context.Context, name string, args map[string]interface{}) (*mcpschema.CallToolResult, error)
}

// Dispatcher validates a proposed key against the catalog, calls the tool
// once and renders its output.
type Dispatcher struct {
	caller  Caller
	policy  *Policy
	timeout time.Duration
}

type Option func(d *Dispatcher)

func WithPolicy(policy *Policy) Option {
	return func(d *Dispatcher) { d.policy = policy }
}

// WithTimeout bounds a single call; zero disables the limit.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = timeout }
}

func New(caller Caller, options ...Option) *Dispatcher {
	ret := &Dispatcher{caller: caller}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Dispatch runs the tool registered under key and returns a glyph prefixed summary.
func (d *Dispatcher) Dispatch(ctx context.Context, key string, params map[string]interface{}) string {
	catalog := d.caller.Catalog()
	entry, ok := catalog.Lookup(key)
	if !ok {
		return InvalidToolMessage(key, catalog.Keys())
	}
	if !d.policy.IsAllowed(key) {
		return fmt.Sprintf("%v Tool '%v' is not allowed by the tool policy.", render.GlyphError, key)
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	elog.Publish(ctx, elog.ToolInput, map[string]interface{}{"tool": entry.Name, "args": params})
	result, err := d.caller.Call(ctx, entry.Name, params)
	if err != nil {
		return executionError(entry.Name, err.Error())
	}
	elog.Publish(ctx, elog.ToolOutput, result)
	if result == nil || len(result.Content) == 0 {
		return render.GlyphOK + " Command executed (no output)"
	}
	text := contentText(result.Content[0])
	if result.IsError != nil && *result.IsError {
		return executionError(entry.Name, text)
	}
	return render.Content(text)
}

// InvalidToolMessage lists valid keys after rejecting key.
func InvalidToolMessage(key string, keys []string) string {
	return fmt.Sprintf("%v The model proposed an invalid tool: '%v'.\n\nAvailable tools are:\n - %v",
		render.GlyphError, key, strings.Join(keys, "\n - "))
}

func executionError(name, cause string) string {
	return fmt.Sprintf("%v Error executing tool '%v': %v", render.GlyphError, name, cause)
}

// contentText extracts the text of a content element. Decoded results carry
// map elements; non-text content is rendered as its JSON form.
func contentText(elem mcpschema.CallToolResultContentElem) string {
	switch actual := elem.(type) {
	case nil:
		return ""
	case string:
		return actual
	case map[string]interface{}:
		if text, ok := actual["text"].(string); ok && (actual["type"] == "text" || actual["type"] == nil) {
			return text
		}
	case mcpschema.TextContent:
		return actual.Text
	case *mcpschema.TextContent:
		if actual != nil {
			return actual.Text
		}
		return ""
	}
	data, err := json.Marshal(elem)
	if err != nil {
		return fmt.Sprint(elem)
	}
	return string(data)
}
