// Package api exposes the thin HTTP boundary over the ingestion core.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/elabz/job-ingestion/internal/ingest"
	"github.com/elabz/job-ingestion/internal/telemetry"
)

// Server wires HTTP handlers for batch submission and status lookup.
type Server struct {
	orchestrator *ingest.Orchestrator
	logger       *zap.Logger
}

func New(orchestrator *ingest.Orchestrator, logger *zap.Logger) *Server {
	return &Server{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/metrics", telemetry.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Post("/jobs/ingest", s.handleIngest)
		r.Get("/jobs/ingest/{id}/status", s.handleStatus)
	})

	return r
}

type ingestRequest struct {
	Jobs []map[string]any `json:"jobs"`
}

type ingestResponse struct {
	ProcessingID string `json:"processing_id"`
	Message      string `json:"message"`
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Jobs == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "jobs is required"})
		return
	}

	batchID, err := s.orchestrator.IngestBatch(r.Context(), req.Jobs)
	if err != nil {
		s.logger.Error("batch ingestion failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "ingestion failed"})
		return
	}

	writeJSON(w, http.StatusAccepted, ingestResponse{
		ProcessingID: batchID,
		Message:      "Batch accepted for processing",
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	st, ok := s.orchestrator.Status(r.Context(), id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "batch not found"})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
