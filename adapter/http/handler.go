package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	elog "github.com/viant/agno/internal/log"
)

// maxCommandBodyBytes bounds the POST /api/command body.
const maxCommandBodyBytes = 1 << 20

type commandRequest struct {
	Command *string `json:"command"`
}

type commandResponse struct {
	Response string `json:"response"`
}

type healthResponse struct {
	Status string `json:"status"`
	Ready  bool   `json:"ready"`
	Tools  int    `json:"tools"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Ready: s.agent.Ready(), Tools: s.agent.Catalog().Len()})
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	entries := s.agent.Catalog().Entries()
	if entries == nil {
		writeDetail(w, http.StatusServiceUnavailable, notReadyMessage)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUsage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.agent.Usage().Snapshot())
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxCommandBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeDetail(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Command == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: command")
		return
	}
	if !s.agent.Ready() {
		writeDetail(w, http.StatusServiceUnavailable, notReadyMessage)
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[http] command panic: %v", rec)
			writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", rec))
		}
	}()
	ctx := elog.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusOK, commandResponse{Response: s.agent.Process(ctx, *req.Command)})
}
