package usage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/agno/genai/llm"
)

func TestAggregator_OnUsage(t *testing.T) {
	agg := &Aggregator{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.OnUsage("gemini-1.5-flash", &llm.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
		}()
	}
	wg.Wait()
	agg.OnUsage("gemini-2.0-flash", &llm.Usage{PromptTokens: 3, CompletionTokens: 1})
	agg.OnUsage("gemini-2.0-flash", nil)

	assert.Equal(t, []string{"gemini-1.5-flash", "gemini-2.0-flash"}, agg.Keys())
	assert.Equal(t, Stat{Calls: 10, PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, agg.Snapshot()["gemini-1.5-flash"])
	assert.Equal(t, Stat{Calls: 11, PromptTokens: 103, CompletionTokens: 51, TotalTokens: 154}, agg.Totals())

	var empty *Aggregator
	empty.OnUsage("x", &llm.Usage{PromptTokens: 1})
	assert.Empty(t, empty.Keys())
}
