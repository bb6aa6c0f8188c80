package usage

import (
	"sort"
	"sync"

	"github.com/viant/agno/genai/llm"
)

// Stat accumulates token numbers for a single model.
type Stat struct {
	Calls            int `json:"calls"`
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

func (s *Stat) add(u *llm.Usage) {
	s.Calls++
	s.PromptTokens += u.PromptTokens
	s.CompletionTokens += u.CompletionTokens
	total := u.TotalTokens
	if total == 0 {
		total = u.PromptTokens + u.CompletionTokens
	}
	s.TotalTokens += total
}

// Aggregator collects usage grouped by model name.
type Aggregator struct {
	mux      sync.RWMutex
	perModel map[string]*Stat
}

// OnUsage matches base.UsageListener so the method value can be handed to
// provider clients directly.
func (a *Aggregator) OnUsage(model string, u *llm.Usage) {
	if a == nil || u == nil {
		return
	}
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.perModel == nil {
		a.perModel = map[string]*Stat{}
	}
	stat, ok := a.perModel[model]
	if !ok {
		stat = &Stat{}
		a.perModel[model] = stat
	}
	stat.add(u)
}

// Snapshot returns a copy of per-model stats.
func (a *Aggregator) Snapshot() map[string]Stat {
	ret := map[string]Stat{}
	if a == nil {
		return ret
	}
	a.mux.RLock()
	defer a.mux.RUnlock()
	for model, stat := range a.perModel {
		ret[model] = *stat
	}
	return ret
}

// Totals sums stats across models.
func (a *Aggregator) Totals() Stat {
	var ret Stat
	for _, stat := range a.Snapshot() {
		ret.Calls += stat.Calls
		ret.PromptTokens += stat.PromptTokens
		ret.CompletionTokens += stat.CompletionTokens
		ret.TotalTokens += stat.TotalTokens
	}
	return ret
}

// Keys returns sorted list of model names.
func (a *Aggregator) Keys() []string {
	snapshot := a.Snapshot()
	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
