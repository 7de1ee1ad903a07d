// Package server publishes the admin front-end configuration over HTTP.
// The browser fetches {prefix}/config.json once at startup; everything it
// needs to reach the backend (resolved API path, login endpoints, timeout)
// is already derived server side.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thalib/console/cmd/console/internal/config"
	"github.com/thalib/console/cmd/console/internal/constants"
	"github.com/thalib/console/cmd/console/internal/logging"
)

// Server represents the HTTP server
type Server struct {
	config  *config.AppConfig
	mux     *http.ServeMux
	server  *http.Server
	version string

	// ready is closed once the listener is bound; addr is valid from then on.
	ready chan struct{}
	addr  string
}

// New creates a new server instance
func New(cfg *config.AppConfig, version string) *Server {
	mux := http.NewServeMux()

	srv := &Server{
		config:  cfg,
		mux:     mux,
		version: version,
		ready:   make(chan struct{}),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      mux,
			ReadTimeout:  constants.HTTPReadTimeout,
			WriteTimeout: constants.HTTPWriteTimeout,
			IdleTimeout:  constants.HTTPIdleTimeout,
		},
	}

	srv.setupRoutes()
	return srv
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	prefix := s.config.Server.Prefix
	healthPath := prefix + "/health"

	requestLogger := logging.NewRequestLogger(logging.RequestLoggerConfig{
		SkipPaths: []string{healthPath},
	})

	s.mux.HandleFunc("GET "+healthPath, requestLogger.Middleware(s.healthHandler))
	s.mux.HandleFunc("GET "+prefix+"/config.json", requestLogger.Middleware(s.bootstrapHandler))
	s.mux.HandleFunc("/", requestLogger.Middleware(s.notFoundHandler))
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Ready is closed once the server accepts connections.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound listen address. Only valid after Ready is closed.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Run serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens on the configured address and serves until ctx is done.
// The shutdown deadline is constants.ShutdownTimeout.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	s.addr = ln.Addr().String()
	close(s.ready)
	logging.Infof("Starting server on %s", s.addr)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- s.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logging.Infof("Received shutdown: %v", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(shutdownCtx); err != nil {
			if err := s.server.Close(); err != nil {
				return fmt.Errorf("could not stop server gracefully: %w", err)
			}
		}
	}

	return nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "live",
		"name":    "console",
		"version": s.version,
	})
}

func (s *Server) bootstrapHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(constants.HeaderCacheControl, constants.CacheNoStore)
	s.writeJSON(w, r, http.StatusOK, NewBootstrap(s.config, s.version))
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	logging.GetLogger().WithContext(r.Context()).WithField("path", r.URL.Path).Debug("Endpoint not found")
	s.writeError(w, r, http.StatusNotFound, "Endpoint not found")
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, statusCode int, data any) {
	w.Header().Set(constants.HeaderContentType, constants.MIMEApplicationJSON)
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.GetLogger().WithContext(r.Context()).ErrorWithErr("Error encoding JSON response", err)
	}
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	s.writeJSON(w, r, statusCode, map[string]any{
		"error": message,
		"code":  statusCode,
	})
}
