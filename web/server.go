// Package web serves a localhost-only read-only view of the run history;
// it intentionally has no auth in this mode.
package web

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prodedup/product"
	"prodedup/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	store *storage.Store
	mux   *http.ServeMux
}

type runRowView struct {
	ID             int64
	StartedAt      string
	Duration       string
	FilesProcessed int
	Link           string
}

type runsPageView struct {
	Title string
	Runs  []runRowView
}

type fileRowView struct {
	FileName       string
	ProductsBefore string
	ProductsAfter  string
	Error          string
}

type runPageView struct {
	Title string
	Run   runRowView
	Files []fileRowView
}

type runJSON struct {
	ID             int64  `json:"id"`
	StartedAt      string `json:"startedAt"`
	FinishedAt     string `json:"finishedAt"`
	FilesProcessed int    `json:"filesProcessed"`
}

type fileStatsJSON struct {
	FileName       string `json:"fileName"`
	ProductsBefore *int   `json:"productsBefore"`
	ProductsAfter  *int   `json:"productsAfter"`
	Error          string `json:"error,omitempty"`
}

func NewServer(store *storage.Store) http.Handler {
	server := &Server{store: store}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", server.handleRuns)
	mux.HandleFunc("GET /run/{id}", server.handleRun)
	mux.HandleFunc("GET /api/runs", server.handleAPIRuns)
	mux.HandleFunc("GET /api/run/{id}", server.handleAPIRunStats)
	server.mux = mux

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	view := runsPageView{Title: "prodedup - runs"}
	for _, run := range runs {
		view.Runs = append(view.Runs, runRow(run))
	}

	if err := renderTemplate(w, "runs.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	run, stats, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	view := runPageView{
		Title: fmt.Sprintf("prodedup - run %d", run.ID),
		Run:   runRow(run),
	}
	for _, record := range stats {
		view.Files = append(view.Files, fileRowView{
			FileName:       record.FileName,
			ProductsBefore: countCell(record.ProductsBefore),
			ProductsAfter:  countCell(record.ProductsAfter),
			Error:          record.Error,
		})
	}

	if err := renderTemplate(w, "run.html", view); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAPIRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	payload := make([]runJSON, 0, len(runs))
	for _, run := range runs {
		payload = append(payload, runJSON{
			ID:             run.ID,
			StartedAt:      run.StartedAt.Format(time.RFC3339),
			FinishedAt:     run.FinishedAt.Format(time.RFC3339),
			FilesProcessed: run.FilesProcessed,
		})
	}
	writeJSON(w, payload)
}

func (s *Server) handleAPIRunStats(w http.ResponseWriter, r *http.Request) {
	_, stats, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	payload := make([]fileStatsJSON, 0, len(stats))
	for _, record := range stats {
		payload = append(payload, fileStatsJSON{
			FileName:       record.FileName,
			ProductsBefore: record.ProductsBefore,
			ProductsAfter:  record.ProductsAfter,
			Error:          record.Error,
		})
	}
	writeJSON(w, payload)
}

func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (storage.RunSummary, []product.FileStats, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid run id", http.StatusBadRequest)
		return storage.RunSummary{}, nil, false
	}

	run, err := s.store.GetRun(id)
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			http.Error(w, "run not found", http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return storage.RunSummary{}, nil, false
	}

	stats, err := s.store.ListRunStats(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return storage.RunSummary{}, nil, false
	}

	return run, stats, true
}

func runRow(run storage.RunSummary) runRowView {
	return runRowView{
		ID:             run.ID,
		StartedAt:      run.StartedAt.Format(time.RFC3339),
		Duration:       run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
		FilesProcessed: run.FilesProcessed,
		Link:           fmt.Sprintf("/run/%d", run.ID),
	}
}

func countCell(count *int) string {
	if count == nil {
		return "-"
	}
	return strconv.Itoa(*count)
}

func renderTemplate(w http.ResponseWriter, name string, data any) error {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.Execute(w, data)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
