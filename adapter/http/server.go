package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/viant/agno/genai/usage"
	"github.com/viant/agno/internal/mcp/session"
)

const (
	welcomeMessage  = "Welcome to the agno server. Use the /api/command endpoint to send commands."
	notReadyMessage = "Agent is not ready. Check the server logs."
)

// Agent processes commands for the HTTP API.
type Agent interface {
	Ready() bool
	Process(ctx context.Context, command string) string
	Catalog() *session.Catalog
	Usage() *usage.Aggregator
}

// Server exposes an Agent over HTTP:
//
//	POST /api/command  -> {"response": "..."}
//	GET  /api/tools    -> tool catalog
//	GET  /api/usage    -> token usage per model
//	GET  /healthz      -> readiness
//	GET  /             -> welcome message
type Server struct {
	agent      Agent
	requestLog bool
}

// ServerOption customises the server.
type ServerOption func(*Server)

// WithRequestLog enables per-request access logging.
func WithRequestLog(enabled bool) ServerOption {
	return func(s *Server) { s.requestLog = enabled }
}

// NewServer returns an http.Handler with routes bound.
func NewServer(agent Agent, opts ...ServerOption) http.Handler {
	s := &Server{agent: agent}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.requestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(api chi.Router) {
		api.Post("/command", s.handleCommand)
		api.Get("/tools", s.handleTools)
		api.Get("/usage", s.handleUsage)
	})
	return WithCORS(r)
}

func writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
