// Package api provides the HTTP API for TaskFlow.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Server is the TaskFlow HTTP API server.
type Server struct {
	mux    *http.ServeMux
	server *http.Server
	logger *slog.Logger

	auth  *AuthHandler
	tasks *TaskHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "0.0.0.0:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, auth *AuthHandler, tasks *TaskHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mux:    http.NewServeMux(),
		logger: logger,
		auth:   auth,
		tasks:  tasks,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      requestLogging(logger, s.mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	s.mux.HandleFunc("POST /api/v1/auth/register", s.auth.Register)
	s.mux.HandleFunc("POST /api/v1/auth/login", s.auth.Login)

	// Tasks, all behind bearer auth
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return s.auth.RequireAuth(h)
	}
	s.mux.HandleFunc("POST /api/v1/tasks", authed(s.tasks.Create))
	s.mux.HandleFunc("GET /api/v1/tasks", authed(s.tasks.List))
	s.mux.HandleFunc("GET /api/v1/tasks/{taskID}", authed(s.tasks.Get))
	s.mux.HandleFunc("PUT /api/v1/tasks/{taskID}", authed(s.tasks.Update))
	s.mux.HandleFunc("POST /api/v1/tasks/{taskID}/toggle", authed(s.tasks.Toggle))
	s.mux.HandleFunc("DELETE /api/v1/tasks/{taskID}", authed(s.tasks.Delete))
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
