package agno

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/viant/agno/genai/render"
)

// ExecCmd runs one command without starting the HTTP server.
// Usage: agno exec -q "find go repositories about mcp"
type ExecCmd struct {
	Query   string `short:"q" long:"query" description:"command text" required:"true"`
	NoColor bool   `long:"no-color" description:"disable colored output"`
}

func (c *ExecCmd) Execute(_ []string) error {
	if c.NoColor {
		color.NoColor = true
	}
	ctx := context.Background()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	agent, err := startAgent(ctx, cfg)
	defer agent.Shutdown(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("startup: %v", err))
	}
	fmt.Println(colorize(agent.Process(ctx, c.Query)))
	return nil
}

// colorize picks a color from the leading status glyph.
func colorize(text string) string {
	switch {
	case strings.HasPrefix(text, render.GlyphError):
		return color.RedString("%s", text)
	case strings.HasPrefix(text, render.GlyphAsk):
		return color.YellowString("%s", text)
	case strings.HasPrefix(text, render.GlyphEmpty):
		return color.CyanString("%s", text)
	}
	return color.GreenString("%s", text)
}
