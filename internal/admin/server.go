// Package admin serves the read-only admin view: a login endpoint and
// completion statistics behind a bearer token.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/abhisek/pbi/internal/auth"
	"github.com/abhisek/pbi/internal/store"
)

// Server wires the admin routes.
type Server struct {
	gate    *auth.Gate
	counter store.CounterRepo
	results store.ResultRepo
	logger  *log.Logger
	router  *mux.Router
}

// NewServer creates the admin server. logger may be nil.
func NewServer(gate *auth.Gate, counter store.CounterRepo, results store.ResultRepo, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		gate:    gate,
		counter: counter,
		results: results,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	// Admin routes (require a session token). Each is registered on its own
	// so a method mismatch still reaches mux as 405.
	api.Handle("/stats", s.requireSession(http.HandlerFunc(s.handleStats))).Methods(http.MethodGet)
	api.Handle("/results", s.requireSession(http.HandlerFunc(s.handleResults))).Methods(http.MethodGet)

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then drains
// connections for up to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("admin server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("admin server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
