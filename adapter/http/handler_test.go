package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/agno/genai/llm"
	"github.com/viant/agno/genai/usage"
	"github.com/viant/agno/internal/mcp/session"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

type fakeAgent struct {
	ready    bool
	catalog  *session.Catalog
	response string
	panics   bool
	commands []string
	usage    *usage.Aggregator
}

func (f *fakeAgent) Usage() *usage.Aggregator { return f.usage }

func (f *fakeAgent) Ready() bool { return f.ready }

func (f *fakeAgent) Catalog() *session.Catalog { return f.catalog }

func (f *fakeAgent) Process(ctx context.Context, command string) string {
	if f.panics {
		panic("boom")
	}
	f.commands = append(f.commands, command)
	return f.response
}

func TestServer_Command(t *testing.T) {
	testCases := []struct {
		description    string
		agent          *fakeAgent
		body           string
		expectedStatus int
		expectedBody   map[string]interface{}
		expectedCalls  []string
	}{
		{
			description:    "command processed",
			agent:          &fakeAgent{ready: true, response: "✅ done"},
			body:           `{"command":"who am i"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"response": "✅ done"},
			expectedCalls:  []string{"who am i"},
		},
		{
			description:    "agent not ready",
			agent:          &fakeAgent{},
			body:           `{"command":"who am i"}`,
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   map[string]interface{}{"detail": "Agent is not ready. Check the server logs."},
		},
		{
			description:    "missing command",
			agent:          &fakeAgent{ready: true},
			body:           `{}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   map[string]interface{}{"detail": "field required: command"},
		},
		{
			description:    "malformed body",
			agent:          &fakeAgent{ready: true},
			body:           `{"command":`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			description:    "oversized body rejected",
			agent:          &fakeAgent{ready: true},
			body:           `{"command":"` + strings.Repeat("a", maxCommandBodyBytes) + `"}`,
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   map[string]interface{}{"detail": "request body exceeds 1048576 bytes"},
		},
		{
			description:    "body at the limit accepted",
			agent:          &fakeAgent{ready: true, response: "✅ done"},
			body:           `{"command":"` + strings.Repeat("a", maxCommandBodyBytes-len(`{"command":""}`)) + `"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"response": "✅ done"},
			expectedCalls:  []string{strings.Repeat("a", maxCommandBodyBytes-len(`{"command":""}`))},
		},
		{
			description:    "panic becomes internal error",
			agent:          &fakeAgent{ready: true, panics: true},
			body:           `{"command":"x"}`,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   map[string]interface{}{"detail": "Internal server error: boom"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			handler := NewServer(tc.agent)
			req := httptest.NewRequest(http.MethodPost, "/api/command", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tc.expectedBody != nil {
				assert.Equal(t, tc.expectedBody, body)
			} else {
				assert.NotEmpty(t, body["detail"])
			}
			assert.Equal(t, tc.expectedCalls, tc.agent.commands)
		})
	}
}

func TestServer_Info(t *testing.T) {
	catalog := session.NewCatalog("github_", []mcpschema.Tool{{Name: "get_me"}, {Name: "search_issues"}})
	testCases := []struct {
		description    string
		agent          *fakeAgent
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{
			description:    "welcome",
			agent:          &fakeAgent{},
			path:           "/",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"Welcome to the agno server. Use the /api/command endpoint to send commands."}`,
		},
		{
			description:    "health before connect",
			agent:          &fakeAgent{},
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok","ready":false,"tools":0}`,
		},
		{
			description:    "health when ready",
			agent:          &fakeAgent{ready: true, catalog: catalog},
			path:           "/healthz",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"ok","ready":true,"tools":2}`,
		},
		{
			description:    "tools",
			agent:          &fakeAgent{ready: true, catalog: catalog},
			path:           "/api/tools",
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"key":"github_get_me","name":"get_me"},{"key":"github_search_issues","name":"search_issues"}]`,
		},
		{
			description:    "usage",
			agent:          &fakeAgent{usage: usedAggregator()},
			path:           "/api/usage",
			expectedStatus: http.StatusOK,
			expectedBody:   `{"gemini-1.5-flash":{"calls":1,"promptTokens":12,"completionTokens":4,"totalTokens":16}}`,
		},
		{
			description:    "usage before any call",
			agent:          &fakeAgent{},
			path:           "/api/usage",
			expectedStatus: http.StatusOK,
			expectedBody:   `{}`,
		},
		{
			description:    "tools before connect",
			agent:          &fakeAgent{},
			path:           "/api/tools",
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"detail":"Agent is not ready. Check the server logs."}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewServer(tc.agent).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func usedAggregator() *usage.Aggregator {
	agg := &usage.Aggregator{}
	agg.OnUsage("gemini-1.5-flash", &llm.Usage{PromptTokens: 12, CompletionTokens: 4, TotalTokens: 16})
	return agg
}
