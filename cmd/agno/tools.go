package agno

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/viant/agno/internal/mcp/session"
)

// ToolsCmd prints the tool catalog the MCP server exposes.
type ToolsCmd struct {
	JSON bool `long:"json" description:"Print the catalog as JSON"`
}

func (c *ToolsCmd) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	agent, err := startAgent(ctx, cfg)
	defer agent.Shutdown(ctx)
	catalog := agent.Catalog()
	if catalog == nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}
	return printCatalog(os.Stdout, catalog, c.JSON)
}

func printCatalog(w io.Writer, catalog *session.Catalog, asJSON bool) error {
	entries := catalog.Entries()
	if asJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no tools registered")
		return err
	}
	for _, entry := range entries {
		line := entry.Key
		if entry.Description != "" {
			line += " - " + strings.TrimSpace(entry.Description)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
