package config

import (
	"time"

	mcp "github.com/viant/mcp"
)

const (
	DefaultName       = "github"
	DefaultToolPrefix = "github_"
	DefaultCommand    = "npx"
	// DefaultTokenEnv is the variable the GitHub MCP server reads its token from.
	DefaultTokenEnv = "GITHUB_PERSONAL_ACCESS_TOKEN"
)

// DefaultArguments launch the reference GitHub MCP server through npx.
var DefaultArguments = []string{"-y", "@modelcontextprotocol/server-github"}

// Server describes a stdio MCP server and how its tools are exposed.
type Server struct {
	Name       string   `yaml:"name,omitempty" json:"name,omitempty"`
	ToolPrefix string   `yaml:"toolPrefix,omitempty" json:"toolPrefix,omitempty"`
	Command    string   `yaml:"command,omitempty" json:"command,omitempty"`
	Arguments  []string `yaml:"args,omitempty" json:"args,omitempty"`
	// TokenEnv names the variable the child process receives Token in.
	TokenEnv string `yaml:"tokenEnv,omitempty" json:"tokenEnv,omitempty"`
	Token    string `yaml:"-" json:"-"`
	// ToolTimeoutSec bounds a single tool call; zero means no limit.
	ToolTimeoutSec int `yaml:"toolTimeoutSec,omitempty" json:"toolTimeoutSec,omitempty"`
}

// Init fills unset fields with the GitHub server defaults.
func (s *Server) Init() {
	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.ToolPrefix == "" {
		s.ToolPrefix = DefaultToolPrefix
	}
	if s.Command == "" {
		s.Command = DefaultCommand
		if len(s.Arguments) == 0 {
			s.Arguments = append([]string{}, DefaultArguments...)
		}
	}
	if s.TokenEnv == "" {
		s.TokenEnv = DefaultTokenEnv
	}
}

// ToolTimeout returns the per call timeout.
func (s *Server) ToolTimeout() time.Duration {
	return time.Duration(s.ToolTimeoutSec) * time.Second
}

// ClientOptions returns stdio transport options for the mcp client.
func (s *Server) ClientOptions() *mcp.ClientOptions {
	return &mcp.ClientOptions{
		Name: s.Name,
		Transport: mcp.ClientTransport{
			Type: "stdio",
			ClientTransportStdio: mcp.ClientTransportStdio{
				Command:   s.Command,
				Arguments: s.Arguments,
			},
		},
	}
}
