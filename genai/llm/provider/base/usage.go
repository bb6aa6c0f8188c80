package base

import "github.com/viant/agno/genai/llm"

// UsageListener receives token usage reported by a provider client.
// A struct aggregator can be passed by its method value, e.g. `agg.OnUsage`.
type UsageListener func(model string, usage *llm.Usage)

// OnUsage invokes the listener when set.
func (f UsageListener) OnUsage(model string, usage *llm.Usage) {
	if f == nil {
		return
	}
	f(model, usage)
}
