package agno

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gops "github.com/google/gops/agent"
	agnohttp "github.com/viant/agno/adapter/http"
	"github.com/viant/agno/genai/redact"
	elog "github.com/viant/agno/internal/log"
)

// ServeCmd starts the HTTP server.
// Usage: agno serve --addr 127.0.0.1:8000
type ServeCmd struct {
	Addr       string `short:"a" long:"addr" description:"listen address (default 127.0.0.1:8000)"`
	EventLog   string `long:"event-log" description:"append LLM and tool events as JSON lines to this file"`
	RequestLog bool   `long:"request-log" description:"log every HTTP request"`
	Gops       bool   `long:"gops" description:"start the gops diagnostics agent"`
}

func (s *ServeCmd) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Addr = s.Addr
	}
	if s.EventLog != "" {
		cfg.EventLog = s.EventLog
	}

	if s.Gops {
		if err := gops.Listen(gops.Options{}); err != nil {
			log.Printf("[serve] gops agent not started: %v", err)
		} else {
			defer gops.Close()
		}
	}
	if cfg.EventLog != "" {
		stop, err := attachEventLog(cfg.EventLog)
		if err != nil {
			return err
		}
		defer stop()
	}

	agent, err := startAgent(ctx, cfg)
	if err != nil {
		log.Printf("💥 Critical error at startup: %v. The server keeps running but cannot process commands.", err)
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: agnohttp.NewServer(agent, agnohttp.WithRequestLog(s.RequestLog)),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("agno HTTP server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("Received %s, initiating graceful shutdown", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if err := agent.Shutdown(shutdownCtx); err != nil {
			log.Printf("[serve] session close: %v", err)
		}
		return nil
	case err := <-errCh:
		_ = agent.Shutdown(ctx)
		return err
	}
}

func attachEventLog(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open event log %v: %w", path, err)
	}
	stop := elog.FileSink(redact.NewWriter(f))
	return func() {
		stop()
		_ = f.Close()
	}, nil
}
