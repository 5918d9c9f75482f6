package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/mw"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/routes"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http   *http.Server
	logger logger.Logger
}

// NewRouter builds the router with global middlewares and every registered route.
func NewRouter(d deps.Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares(d.Logger)...)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	routes.RegisterAll(r, d)
	return r
}

// middlewares is the global stack. Log wraps Recoverer so a panicking
// handler still gets its access-log line with the 500.
func middlewares(log logger.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.GetHead,
		middleware.RequestID, // X-Request-ID on each request
		mw.Log(log),
		middleware.Recoverer,                 // never crash the process on panic
		middleware.Timeout(10 * time.Second), // bulk imports rewrite the whole document
	}
}

// New builds the HTTP server listening on addr.
func New(addr string, d deps.Deps) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(d),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{
		http:   s,
		logger: d.Logger,
	}
}

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logger.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.http.Shutdown(ctx)
}
