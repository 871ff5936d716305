// Package server exposes the pipeline over HTTP for the reception
// upload page.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"cabsbot/internal/delivery"
	"cabsbot/internal/format"
	"cabsbot/internal/pipeline"
	"cabsbot/internal/store"
)

// maxUploadBytes caps a whole multipart upload. CABS exports are tiny;
// anything near this limit is not a report.
const maxUploadBytes = 32 << 20

type Server struct {
	Pipeline *pipeline.Pipeline
}

// Router builds the HTTP surface: process renders without posting,
// send also delivers to the webhook, runs reads the journal.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/process", s.handleProcess)
	r.Post("/api/send", s.handleSend)
	r.Get("/api/runs", s.handleRuns)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// processResponse is what the upload page renders: per-host messages,
// the plain-text copy block and the run statistics.
type processResponse struct {
	RunID        string             `json:"runId"`
	Messages     []string           `json:"messages"`
	Summary      string             `json:"summary"`
	CopyText     string             `json:"copyText"`
	Statistics   statisticsResponse `json:"statistics"`
	DeliverySent int                `json:"deliverySent,omitempty"`
	DeliveryFail int                `json:"deliveryFailed,omitempty"`
}

type statisticsResponse struct {
	TotalHosts        int `json:"totalHosts"`
	TotalBookings     int `json:"totalBookings"`
	TotalGuests       int `json:"totalGuests"`
	TotalMeetings     int `json:"totalMeetings"`
	UnmatchedVisitors int `json:"unmatchedVisitors"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	out, ok := s.runPipeline(w, r, "upload")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, buildResponse(out, nil))
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	out, ok := s.runPipeline(w, r, "upload")
	if !ok {
		return
	}
	tally, err := s.Pipeline.Deliver(r.Context(), out)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, buildResponse(out, &tally))
}

// runPipeline parses the multipart upload, runs the pipeline and
// journals the run. A false return means the response is written.
func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request, source string) (*pipeline.Outcome, bool) {
	started := time.Now()
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return nil, false
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no files uploaded, use multipart field 'files'"))
		return nil, false
	}

	var sources []pipeline.Source
	for _, fh := range r.MultipartForm.File["files"] {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("open %s: %w", fh.Filename, err))
			return nil, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("read %s: %w", fh.Filename, err))
			return nil, false
		}
		sources = append(sources, pipeline.Source{Name: fh.Filename, Data: data})
	}

	out, err := s.Pipeline.ProcessSources(r.Context(), sources)
	s.Pipeline.JournalRun(out, source, started, err)
	if err != nil {
		// An unrecognized file is a client problem, not a server one.
		writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return out, true
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.Pipeline.DB == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("run journal not configured"))
		return
	}
	runs, err := store.RecentRuns(s.Pipeline.DB, 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func buildResponse(out *pipeline.Outcome, tally *delivery.Tally) processResponse {
	resp := processResponse{
		RunID:    out.RunID,
		Messages: format.HostMessages(out.Schedule),
		Summary:  format.SummaryMessage(out.Schedule),
		CopyText: format.CopyText(out.Schedule),
		Statistics: statisticsResponse{
			TotalHosts:        out.Schedule.Statistics.TotalHosts,
			TotalBookings:     out.Schedule.Statistics.TotalBookings,
			TotalGuests:       out.Schedule.Statistics.TotalGuests,
			TotalMeetings:     out.Consolidation.Statistics.TotalMeetings,
			UnmatchedVisitors: out.Consolidation.Statistics.UnmatchedVisitors,
		},
	}
	if tally != nil {
		resp.DeliverySent = tally.Sent
		resp.DeliveryFail = tally.Failed
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
