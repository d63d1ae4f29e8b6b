// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes a saved research fields analysis over HTTP.
//
// The results file is read on every request, so a fresh analysis is served
// without a restart. When no analysis exists yet the API answers 503
// instead of failing.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/research-fields/internal/fields"
	"github.com/pdiddy/research-fields/internal/logger"
	"github.com/pdiddy/research-fields/internal/report"
	"github.com/pdiddy/research-fields/pkg/types"
)

const shutdownTimeout = 10 * time.Second

// Server serves the results API.
type Server struct {
	addr        string
	resultsPath string
	log         *logger.Logger
	router      *chi.Mux
}

// fieldEntry is the list form of a field in API responses.
type fieldEntry struct {
	Label string       `json:"label"`
	Stats fields.Stats `json:"stats"`
}

type summaryResponse struct {
	TotalAuthors      int            `json:"total_authors"`
	TotalUniqueFields int            `json:"total_unique_fields"`
	Summary           fields.Summary `json:"summary"`
}

// New builds a Server for cfg. Metrics go to the default Prometheus
// registry unless WithRegistry is given.
func New(cfg types.ServerConfig, log *logger.Logger, opts ...Option) (*Server, error) {
	o := options{
		registerer: prometheus.DefaultRegisterer,
		gatherer:   prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m, err := newMetrics(o.registerer)
	if err != nil {
		return nil, fmt.Errorf("registering metrics: %w", err)
	}

	s := &Server{
		addr:        cfg.Addr,
		resultsPath: cfg.ResultsPath,
		log:         log.WithComponent("server"),
	}

	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(m.instrument)
	mux.Get("/healthz", s.handleHealthz)
	mux.Get("/api/fields", s.handleFields)
	mux.Get("/api/fields/{label}", s.handleField)
	mux.Get("/api/summary", s.handleSummary)
	mux.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	s.router = mux

	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.addr).Info("research fields API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	rs, ok := s.load(w, r)
	if !ok {
		return
	}

	top := rs.Top(limit)
	out := make([]fieldEntry, len(top))
	for i, f := range top {
		out[i] = fieldEntry{Label: f.Label, Stats: f.Stats}
	}
	writeJSON(w, out)
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.load(w, r)
	if !ok {
		return
	}

	label := chi.URLParam(r, "label")
	f, found := lookup(rs, label)
	if !found {
		http.Error(w, "research field not found", http.StatusNotFound)
		return
	}
	writeJSON(w, fieldEntry{Label: f.Label, Stats: f.Stats})
}

// lookup tries the label as given, then path-unescaped, then normalized.
func lookup(rs *fields.ResultSet, label string) (fields.Field, bool) {
	if f, ok := rs.Lookup(label); ok {
		return f, true
	}
	if unescaped, err := url.PathUnescape(label); err == nil && unescaped != label {
		label = unescaped
		if f, ok := rs.Lookup(label); ok {
			return f, true
		}
	}
	return rs.Lookup(fields.Normalize(label))
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	rs, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, summaryResponse{
		TotalAuthors:      rs.TotalAuthors,
		TotalUniqueFields: rs.TotalUniqueFields,
		Summary:           rs.Summary,
	})
}

// load reads the results file. On failure it writes the error response and
// returns false.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (*fields.ResultSet, bool) {
	rs, err := report.LoadResults(s.resultsPath)
	if err == nil {
		return rs, true
	}

	if errors.Is(err, report.ErrResultsUnavailable) {
		s.log.WithRequest(r).Warn("results file missing")
		http.Error(w, report.ErrResultsUnavailable.Error(), http.StatusServiceUnavailable)
		return nil, false
	}

	s.log.WithRequest(r).WithError(err).Error("loading results")
	http.Error(w, "failed to load research fields analysis", http.StatusInternalServerError)
	return nil, false
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
