package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	mcpcfg "github.com/viant/agno/internal/mcp/config"
	"github.com/viant/mcp"
	mcpschema "github.com/viant/mcp-protocol/schema"
	mcpclient "github.com/viant/mcp/client"
)

// Client is the subset of the MCP client protocol a session uses.
type Client interface {
	ListTools(ctx context.Context, cursor *string, options ...mcpclient.RequestOption) (*mcpschema.ListToolsResult, error)
	CallTool(ctx context.Context, params *mcpschema.CallToolRequestParams, options ...mcpclient.RequestOption) (*mcpschema.CallToolResult, error)
}

var _ Client = (*mcpclient.Client)(nil)

// Connector creates a client for a server. The returned client has completed
// the initialize handshake.
type Connector func(ctx context.Context, server *mcpcfg.Server) (Client, error)

// Session owns one long-lived MCP client. Protocol traffic is serialized, so
// concurrent callers observe requests one at a time.
type Session struct {
	server    *mcpcfg.Server
	connector Connector

	mux     sync.Mutex
	client  Client
	catalog atomic.Pointer[Catalog]
}

type Option func(s *Session)

// WithConnector replaces the stdio connector.
func WithConnector(connector Connector) Option {
	return func(s *Session) { s.connector = connector }
}

// New creates a disconnected session.
func New(server *mcpcfg.Server, options ...Option) *Session {
	if server == nil {
		server = &mcpcfg.Server{}
	}
	server.Init()
	ret := &Session{server: server, connector: StdioConnector}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// StdioConnector spawns the server command with the token exported to its environment.
// mcp.NewClient performs the initialize handshake before returning.
func StdioConnector(_ context.Context, server *mcpcfg.Server) (Client, error) {
	if _, err := exec.LookPath(server.Command); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommandNotFound, server.Command)
	}
	if server.TokenEnv != "" {
		if err := os.Setenv(server.TokenEnv, server.Token); err != nil {
			return nil, fmt.Errorf("failed to export %v: %w", server.TokenEnv, err)
		}
	}
	cli, err := mcp.NewClient(nil, server.ClientOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to start %v: %w", server.Command, err)
	}
	return cli, nil
}

// Server returns the session server configuration.
func (s *Session) Server() *mcpcfg.Server { return s.server }

// Connect starts the server and loads the catalog.
// Calling Connect on a connected session is a no-op.
func (s *Session) Connect(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.client != nil {
		return nil
	}
	if s.server.Token == "" {
		return ErrMissingToken
	}
	client, err := s.connector(ctx, s.server)
	if err != nil {
		return err
	}
	tools, err := listTools(ctx, client)
	if err != nil {
		closeClient(client)
		return fmt.Errorf("list tools: %w", err)
	}
	if len(tools) == 0 {
		closeClient(client)
		return ErrNoTools
	}
	catalog := NewCatalog(s.server.ToolPrefix, tools)
	s.client = client
	s.catalog.Store(catalog)
	log.Printf("[mcp:%v] connected, %d tools available", s.server.Name, catalog.Len())
	return nil
}

func listTools(ctx context.Context, client Client) ([]mcpschema.Tool, error) {
	var tools []mcpschema.Tool
	var cursor *string
	seen := map[string]bool{}
	for {
		result, err := client.ListTools(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return tools, nil
		}
		tools = append(tools, result.Tools...)
		if result.NextCursor == nil || *result.NextCursor == "" || seen[*result.NextCursor] {
			return tools, nil
		}
		seen[*result.NextCursor] = true
		cursor = result.NextCursor
	}
}

// Connected reports whether the catalog is loaded.
func (s *Session) Connected() bool {
	return s.catalog.Load() != nil
}

// Catalog returns the discovered tools, nil before Connect.
func (s *Session) Catalog() *Catalog {
	return s.catalog.Load()
}

// Call invokes a server tool by its real name.
func (s *Session) Call(ctx context.Context, name string, args map[string]interface{}) (*mcpschema.CallToolResult, error) {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.client == nil {
		return nil, ErrNotConnected
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	params := &mcpschema.CallToolRequestParams{
		Name:      name,
		Arguments: args,
	}
	return s.client.CallTool(ctx, params)
}

// Close releases the client; it is safe to call more than once.
func (s *Session) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.client == nil {
		return nil
	}
	client := s.client
	s.client = nil
	s.catalog.Store(nil)
	log.Printf("[mcp:%v] session closed", s.server.Name)
	return closeClient(client)
}

// closeClient stops the client. mcpclient.Client.Close only stops its
// background routines; the stdio child keeps its pipes until agno exits,
// at which point the server reads EOF on stdin and terminates.
func closeClient(client Client) error {
	switch closer := client.(type) {
	case interface{ Close() }:
		closer.Close()
	case io.Closer:
		return closer.Close()
	}
	return nil
}
