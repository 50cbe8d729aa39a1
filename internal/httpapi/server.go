// Package httpapi exposes the corpus and query service over HTTP. It is a
// thin transport layer: all behavior lives in the core packages.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"newsanalyst/internal/corpus"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/metrics"
	"newsanalyst/internal/poller"
	"newsanalyst/internal/query"
)

// StateReporter exposes the poller's loop state for status endpoints.
type StateReporter interface {
	State() poller.State
}

type Server struct {
	store   *corpus.Store
	service *query.Service
	poller  StateReporter
	topics  []string
}

func NewServer(store *corpus.Store, service *query.Service, p StateReporter, topics []string) *Server {
	return &Server{store: store, service: service, poller: p, topics: topics}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleHome)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/articles", s.handleArticles)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("POST /v1/pw_ai_answer", s.handleAnswer)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	return mux
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Live News Analyst")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "POST /v1/pw_ai_answer  {\"prompt\": \"...\"}")
	fmt.Fprintln(w, "GET  /api/status")
	fmt.Fprintln(w, "GET  /api/articles")
	fmt.Fprintln(w, "GET  /api/stats")
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status := "running"
	if s.poller != nil && s.poller.State() == poller.StateHalted {
		status = "ingestion_halted"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":         status,
		"articles_count": s.store.Len(),
		"topics":         s.topics,
	})
}

func (s *Server) handleArticles(w http.ResponseWriter, r *http.Request) {
	recent := s.store.Recent(10)

	items := make([]map[string]string, 0, len(recent))
	for _, a := range recent {
		items = append(items, map[string]string{
			"title":        a.Title,
			"source":       a.Source,
			"topic":        a.Topic,
			"category":     a.Category,
			"published_at": a.PublishedAt,
			"url":          a.URL,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"articles": items,
		"total":    s.store.Len(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Stats())
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No prompt provided"})
		return
	}

	logger.Info("httpapi: question received", "prompt_len", len(req.Prompt))

	resp := s.service.Answer(req.Prompt)
	status := http.StatusOK
	if resp.Failed {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	code := http.StatusOK
	if !stats["is_healthy"].(bool) {
		status = "error"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":     status,
		"last_poll":  stats["last_poll_time"],
		"last_error": stats["last_error"],
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Global.GetStats())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("httpapi: encode response failed", "error", err)
	}
}
