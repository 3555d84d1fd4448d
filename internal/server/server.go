// Package server provides the HTTP API for importing resumes.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-importer/internal/config"
	"github.com/jonathan/resume-importer/internal/db"
	"github.com/jonathan/resume-importer/internal/importer"
	"github.com/jonathan/resume-importer/internal/logger"
	"github.com/jonathan/resume-importer/internal/server/ratelimit"
)

// Repository reads and deletes stored imports. *db.DB satisfies it.
type Repository interface {
	GetImport(ctx context.Context, id uuid.UUID) (*db.Import, error)
	ListImports(ctx context.Context, limit int) ([]db.ImportSummary, error)
	DeleteImport(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
}

var _ Repository = (*db.DB)(nil)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	importer       *importer.Service
	repo           Repository
	rateLimiter    *ratelimit.Limiter
	maxUploadBytes int64
}

// Config holds server configuration
type Config struct {
	Port           int
	MaxUploadBytes int64
	RateLimit      *ratelimit.Config
}

// New creates a server. repo may be nil, in which case the history
// endpoints answer 503.
func New(cfg Config, svc *importer.Service, repo Repository) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = config.DefaultMaxUploadBytes
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.FromEnv()
	}

	s := &Server{
		importer:       svc,
		repo:           repo,
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler wrapped in middleware
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /imports", s.handleImportFile)
	mux.HandleFunc("POST /imports/text", s.handleImportText)
	mux.HandleFunc("GET /imports", s.handleListImports)
	mux.HandleFunc("GET /imports/{id}", s.handleGetImport)
	mux.HandleFunc("DELETE /imports/{id}", s.handleDeleteImport)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops the server and its background workers
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// handleHealth reports liveness and, when a database is configured, its reachability
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok", "storage": "disabled"}
	if s.repo != nil {
		if err := s.repo.Ping(r.Context()); err != nil {
			logger.Ctx(r.Context()).Warn().Err(err).Msg("health check: database unreachable")
			resp["status"] = "degraded"
			resp["storage"] = "unreachable"
			s.jsonResponse(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp["storage"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
