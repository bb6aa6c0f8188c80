package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mcpcfg "github.com/viant/agno/internal/mcp/config"
	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"
)

// fakeClient serves pages of tools and records tool calls.
type fakeClient struct {
	pages    [][]mcpschema.Tool
	inits    int
	listErr  error
	result   *mcpschema.CallToolResult
	inFlight atomic.Int32
	overlap  atomic.Bool
	calls    []*mcpschema.CallToolRequestParams
	closed   bool
	mu       sync.Mutex
}

func (f *fakeClient) Initialize(ctx context.Context, options ...mcpclient.RequestOption) (*mcpschema.InitializeResult, error) {
	f.inits++
	return &mcpschema.InitializeResult{}, nil
}

func (f *fakeClient) ListTools(ctx context.Context, cursor *string, options ...mcpclient.RequestOption) (*mcpschema.ListToolsResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := 0
	if cursor != nil {
		switch *cursor {
		case "p1":
			page = 1
		case "p2":
			page = 2
		}
	}
	if page >= len(f.pages) {
		return &mcpschema.ListToolsResult{}, nil
	}
	result := &mcpschema.ListToolsResult{Tools: f.pages[page]}
	if page+1 < len(f.pages) {
		next := []string{"p1", "p2"}[page]
		result.NextCursor = &next
	}
	return result, nil
}

func (f *fakeClient) CallTool(ctx context.Context, params *mcpschema.CallToolRequestParams, options ...mcpclient.RequestOption) (*mcpschema.CallToolResult, error) {
	if f.inFlight.Add(1) > 1 {
		f.overlap.Store(true)
	}
	defer f.inFlight.Add(-1)
	time.Sleep(time.Millisecond)
	f.mu.Lock()
	f.calls = append(f.calls, params)
	f.mu.Unlock()
	return f.result, nil
}

// Close matches mcpclient.Client.Close.
func (f *fakeClient) Close() {
	f.closed = true
}

// errorCloser exposes the io.Closer form instead.
type errorCloser struct {
	*fakeClient
	err error
}

func (e *errorCloser) Close() error {
	e.fakeClient.closed = true
	return e.err
}

func ptr[T any](v T) *T { return &v }

func newSession(client *fakeClient, token string) *Session {
	return New(&mcpcfg.Server{Token: token}, WithConnector(func(ctx context.Context, server *mcpcfg.Server) (Client, error) {
		return client, nil
	}))
}

func TestSession_Connect(t *testing.T) {
	testCases := []struct {
		description  string
		client       *fakeClient
		token        string
		expectErr    error
		expectedKeys []string
	}{
		{
			description: "paged listing keeps order",
			client: &fakeClient{pages: [][]mcpschema.Tool{
				{{Name: "search_repositories", Description: ptr("Search repos")}, {Name: "create_issue"}},
				{{Name: "get_file_contents"}},
			}},
			token:        "t",
			expectedKeys: []string{"github_search_repositories", "github_create_issue", "github_get_file_contents"},
		},
		{
			description: "missing token",
			client:      &fakeClient{},
			expectErr:   ErrMissingToken,
		},
		{
			description: "no tools",
			client:      &fakeClient{pages: [][]mcpschema.Tool{{}}},
			token:       "t",
			expectErr:   ErrNoTools,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			s := newSession(tc.client, tc.token)
			err := s.Connect(context.Background())
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				assert.False(t, s.Connected())
				return
			}
			require.NoError(t, err)
			assert.True(t, s.Connected())
			assert.Zero(t, tc.client.inits)
			assert.Equal(t, tc.expectedKeys, s.Catalog().Keys())
			entry, ok := s.Catalog().Lookup("github_search_repositories")
			require.True(t, ok)
			assert.Equal(t, "search_repositories", entry.Name)
			assert.Equal(t, "Search repos", entry.Description)
		})
	}
}

func TestSession_ConnectErrors(t *testing.T) {
	listFail := &fakeClient{listErr: errors.New("tools/list rejected")}
	s := newSession(listFail, "t")
	err := s.Connect(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tools/list rejected")
	assert.True(t, listFail.closed)
	assert.Zero(t, listFail.inits)

	handshake := errors.New("handshake")
	connectorFail := New(&mcpcfg.Server{Token: "t"}, WithConnector(func(ctx context.Context, server *mcpcfg.Server) (Client, error) {
		return nil, handshake
	}))
	assert.ErrorIs(t, connectorFail.Connect(context.Background()), handshake)
	assert.False(t, connectorFail.Connected())
}

func TestSession_Close(t *testing.T) {
	closeErr := errors.New("pipe closed")
	tools := [][]mcpschema.Tool{{{Name: "get_me"}}}
	testCases := []struct {
		description string
		fake        *fakeClient
		client      func(f *fakeClient) Client
		expectErr   error
	}{
		{
			description: "close without result",
			fake:        &fakeClient{pages: tools},
			client:      func(f *fakeClient) Client { return f },
		},
		{
			description: "io.Closer error returned",
			fake:        &fakeClient{pages: tools},
			client:      func(f *fakeClient) Client { return &errorCloser{fakeClient: f, err: closeErr} },
			expectErr:   closeErr,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			client := tc.client(tc.fake)
			s := New(&mcpcfg.Server{Token: "t"}, WithConnector(func(ctx context.Context, server *mcpcfg.Server) (Client, error) {
				return client, nil
			}))
			require.NoError(t, s.Connect(context.Background()))
			err := s.Close()
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			} else {
				assert.NoError(t, err)
			}
			assert.True(t, tc.fake.closed)
			assert.False(t, s.Connected())
		})
	}
}

func TestStdioConnector_CommandNotFound(t *testing.T) {
	_, err := StdioConnector(context.Background(), &mcpcfg.Server{Command: "agno-no-such-binary"})
	assert.ErrorIs(t, err, ErrCommandNotFound)
}

func TestSession_CallIsSerialized(t *testing.T) {
	client := &fakeClient{
		pages:  [][]mcpschema.Tool{{{Name: "get_me"}}},
		result: &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{map[string]interface{}{"type": "text", "text": "ok"}}},
	}
	s := newSession(client, "t")
	_, err := s.Call(context.Background(), "get_me", nil)
	assert.ErrorIs(t, err, ErrNotConnected)

	require.NoError(t, s.Connect(context.Background()))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.Call(context.Background(), "get_me", nil)
			assert.NoError(t, err)
			assert.Equal(t, map[string]interface{}{"type": "text", "text": "ok"}, result.Content[0])
		}()
	}
	wg.Wait()
	assert.False(t, client.overlap.Load())
	assert.Len(t, client.calls, 8)
	assert.Equal(t, map[string]interface{}{}, client.calls[0].Arguments)

	require.NoError(t, s.Close())
	assert.True(t, client.closed)
	assert.False(t, s.Connected())
	assert.NoError(t, s.Close())
}
