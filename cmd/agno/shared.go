package agno

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/agno/internal/config"
	"github.com/viant/agno/service"
)

var (
	cfgMu   sync.RWMutex
	cfgPath string
)

// called from CLI before flag parsing
func setConfigPath(p string) {
	cfgMu.Lock()
	cfgPath = p
	cfgMu.Unlock()
}

func loadConfig(ctx context.Context) (*config.Config, error) {
	cfgMu.RLock()
	path := cfgPath
	cfgMu.RUnlock()
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("config init error: %w", err)
	}
	return cfg, nil
}

// startAgent creates and starts an agent for cfg. The agent is returned
// even when start fails so the caller decides whether a partial start is usable.
func startAgent(ctx context.Context, cfg *config.Config) (*service.Agent, error) {
	agent := service.New(cfg)
	return agent, agent.Start(ctx)
}
