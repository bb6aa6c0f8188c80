package session

import "errors"

var (
	ErrMissingToken    = errors.New("GITHUB_TOKEN was not set")
	ErrNoTools         = errors.New("no tools found on the MCP server")
	ErrCommandNotFound = errors.New("MCP server command not found, install Node.js")
	ErrNotConnected    = errors.New("not connected to the MCP server")
)
