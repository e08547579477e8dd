// Package server provides the HTTP server for the palm reading service.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/hastarekha/internal/app"
	"github.com/ayusman/hastarekha/internal/logger"
	"github.com/ayusman/hastarekha/internal/server/api"
	"github.com/ayusman/hastarekha/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir      string
	Analyzer       *app.Analyzer
	Store          *store.Store
	MaxUploadBytes int64
}

// Server represents the HTTP server for the palm reading service.
type Server struct {
	config   Config
	mux      *http.ServeMux
	sessions *app.Sessions
	start    time.Time
	http     *http.Server
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	if config.Analyzer != nil {
		s.sessions = app.NewSessions(config.Analyzer)
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Analysis endpoints need an analyzer; history endpoints also need a store
	if s.sessions != nil {
		readings := api.NewReadingHandler(s.sessions, s.config.Store, s.config.MaxUploadBytes)
		s.mux.Handle("/api/readings", readings)
		s.mux.Handle("/api/readings/", readings)

		s.mux.Handle("/api/analyze", NewAnalyzeHandler(s.sessions, s.config.MaxUploadBytes))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	logger.WithFields(logrus.Fields{
		"method":      r.Method,
		"path":        r.URL.Path,
		"status_code": rec.status,
		"duration_ms": time.Since(start).Milliseconds(),
		"client":      api.ClientID(r),
	}).Debug("request")
}

// Sessions returns the per-client session registry, or nil without an analyzer.
func (s *Server) Sessions() *app.Sessions {
	return s.sessions
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]any{
		"status":  "ok",
		"uptime":  time.Since(s.start).String(),
		"history": s.config.Store != nil,
	}
	if s.sessions != nil {
		response["sessions"] = s.sessions.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until ctx is cancelled or the server fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	pruneTicker := time.NewTicker(time.Minute)
	defer pruneTicker.Stop()

	for {
		select {
		case err := <-errCh:
			return err
		case <-pruneTicker.C:
			if s.sessions != nil {
				if n := s.sessions.Prune(app.SessionIdleTTL); n > 0 {
					logger.WithField("removed", n).Debug("pruned idle sessions")
				}
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.http.Shutdown(shutdownCtx)
		}
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack passes through to the underlying writer for websocket upgrades.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
