package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/loglens/loglens/internal/models"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/explain", s.handleExplain)
	mux.HandleFunc("POST /api/v1/explain/batch", s.handleBatch)
	mux.HandleFunc("POST /api/v1/incident", s.handleIncident)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	return mux
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Log) == "" {
		s.writeError(w, http.StatusBadRequest, "log is required")
		return
	}

	explanation := s.analyzer.Explain(r.Context(), req.Log, req.Source)
	s.writeJSON(w, http.StatusOK, explanation)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Logs) == 0 {
		s.writeError(w, http.StatusBadRequest, "logs is required")
		return
	}
	if len(req.Logs) > s.limits.BatchMaxLines {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("too many logs: %d exceeds limit %d", len(req.Logs), s.limits.BatchMaxLines))
		return
	}

	explanations := s.analyzer.ExplainBatch(r.Context(), req.Logs, req.Source)
	s.writeJSON(w, http.StatusOK, map[string]any{
		"explanations": explanations,
		"count":        len(explanations),
	})
}

func (s *Server) handleIncident(w http.ResponseWriter, r *http.Request) {
	var req models.IncidentRequest
	if !s.decode(w, r, &req) {
		return
	}
	if len(req.Logs) > s.limits.IncidentMaxLines {
		s.writeError(w, http.StatusBadRequest,
			fmt.Sprintf("too many logs: %d exceeds limit %d", len(req.Logs), s.limits.IncidentMaxLines))
		return
	}

	summary := s.analyzer.Incident(r.Context(), req.Logs, req.IncidentContext)
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
