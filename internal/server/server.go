// Package server exposes the analysis pipeline over HTTP: one upload
// endpoint and one chat endpoint. Only the file's name, size, and leading
// bytes ever reach the engine; the rest of the upload is drained and
// discarded.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/analysis"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/classify"
	"github.com/Tarunjit45/OmniAnalyzer-AI/internal/sniff"
)

// maxUploadBytes caps the multipart form memory; file parts beyond this
// spill to disk and are still only read up to the head size.
const maxUploadBytes = 32 << 20

// Server handles file submissions and chat over HTTP.
type Server struct {
	pipe   *analysis.Pipeline
	logger zerolog.Logger
}

// New creates a server over the given pipeline.
func New(pipe *analysis.Pipeline, logger zerolog.Logger) *Server {
	return &Server{pipe: pipe, logger: logger}
}

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/chat", s.handleChat)
	return mux
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "expected multipart form with a \"file\" part", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing \"file\" part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	head := make([]byte, sniff.HeadSize)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}
	head = head[:n]

	d := classify.FileDescriptor{
		Name:      filepath.Base(header.Filename),
		SizeBytes: header.Size,
	}

	report := s.pipe.Analyze(r.Context(), d, head)
	s.pipe.NewSession(report)

	s.logger.Info().
		Str("analysis_id", report.AnalysisID).
		Str("file", d.Name).
		Int64("size", d.SizeBytes).
		Str("verdict", string(report.Result.Verdict)).
		Str("source", string(report.Source)).
		Int("mismatches", len(report.Mismatches)).
		Msg("analyze")

	if report.UsedFallback() {
		s.logger.Warn().
			Str("analysis_id", report.AnalysisID).
			Str("reason", report.FallbackReason).
			Msg("remote analyzer failed, local result used")
	}

	writeJSON(w, http.StatusOK, report)
}

type chatRequest struct {
	AnalysisID string `json:"analysis_id"`
	Message    string `json:"message"`
}

type chatResponse struct {
	AnalysisID string `json:"analysis_id"`
	Reply      string `json:"reply"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.AnalysisID == "" || req.Message == "" {
		http.Error(w, "analysis_id and message are required", http.StatusBadRequest)
		return
	}

	session, ok := s.pipe.SessionFor(req.AnalysisID)
	if !ok {
		http.Error(w, "no active session for that analysis", http.StatusConflict)
		return
	}

	reply, err := session.Send(r.Context(), req.Message)
	switch {
	case err == nil:
	case errors.Is(err, analysis.ErrNoChat):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, analysis.ErrSuperseded), errors.Is(err, analysis.ErrBusy):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	default:
		s.logger.Error().Err(err).Str("analysis_id", req.AnalysisID).Msg("chat failed")
		http.Error(w, "chat failed", http.StatusBadGateway)
		return
	}

	s.logger.Info().Str("analysis_id", req.AnalysisID).Msg("chat")
	writeJSON(w, http.StatusOK, chatResponse{AnalysisID: req.AnalysisID, Reply: reply})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
