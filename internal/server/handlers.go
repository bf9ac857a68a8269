package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"taxdash/internal/models"
	"taxdash/internal/storage"
)

// maxSummaryBytes bounds pushed payloads. Summaries are small; anything
// larger is a client bug.
const maxSummaryBytes = 1 << 20

// HandleRoot serves the dashboard page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	view := s.pageViewLocked()
	s.mu.Unlock()

	page, err := s.pageBuilder.BuildPage(view)
	if err != nil {
		s.log.Error("page build failed", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, page)
}

// HandleChart serves the rendered document of one chart surface, consumed by
// the page iframes
func (s *Server) HandleChart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/charts/")
	if name == "" || strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}

	surface, ok := s.Surfaces.Lookup(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	doc := surface.HTML()
	if doc == "" {
		http.Error(w, "Chart not rendered yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, doc)
}

// HandleSummary accepts a pushed summary payload and applies it to the charts
func (s *Server) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSummaryBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	payload, warnings, err := models.ParseSummaryPayload(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid summary payload: %v", err), http.StatusBadRequest)
		return
	}

	s.ApplySummary(r.Context(), payload)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   "applied",
		"warnings": warnings,
	})
}

// resizeRequest carries new pixel dimensions per surface name
type resizeRequest map[string]struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// HandleResize updates surface dimensions and re-renders every chart at its
// new size
func (s *Server) HandleResize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid resize request", http.StatusBadRequest)
		return
	}

	for name, dims := range req {
		if dims.Width <= 0 || dims.Height <= 0 {
			http.Error(w, fmt.Sprintf("Invalid dimensions for %q", name), http.StatusBadRequest)
			return
		}
		if surface, ok := s.Surfaces.Lookup(name); ok {
			surface.SetSize(dims.Width, dims.Height)
		}
	}

	s.mu.Lock()
	s.Dashboard.ResizeAll()
	s.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

// HandleListSnapshots returns the stored snapshot index pages, newest first
func (s *Server) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	snapshots, err := s.Storage.ListSnapshots(r.Context(), 50)
	if err != nil {
		s.log.Error("snapshot listing failed", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"snapshots": snapshots,
	})
}

// HandleFileProxy serves stored snapshot files
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" || strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}

// HandleHealth reports liveness and whether any chart has left sample data
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sampleCharts := s.Dashboard.SampleCharts()
	lastUpdated := s.lastUpdated
	s.mu.Unlock()

	status := map[string]interface{}{
		"status":        "ok",
		"charts":        s.Dashboard.Registry().Names(),
		"sample_charts": sampleCharts,
	}
	if !lastUpdated.IsZero() {
		status["last_updated"] = lastUpdated.UTC().Format("2006-01-02T15:04:05Z")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(status)
}

// marshalPayload renders the payload back to JSON for snapshot archival.
// Marshal of our own model types cannot fail; a nil payload yields nil.
func marshalPayload(payload *models.SummaryPayload) []byte {
	if payload == nil {
		return nil
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil
	}
	return data
}
