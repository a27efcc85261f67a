// Package web serves the location catalogue over HTTP: a page whose links
// open each map in a new tab, and redirect endpoints for each identifier.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driving"
)

// ErrMissingLocationService is returned when no location service is provided.
var ErrMissingLocationService = errors.New("web: location service is required")

// Server is the HTTP adapter for the location resolver.
type Server struct {
	handlers *Handlers
	router   chi.Router
}

// NewServer creates a server backed by locations.
func NewServer(locations driving.LocationService) (*Server, error) {
	if locations == nil {
		return nil, ErrMissingLocationService
	}

	s := &Server{handlers: NewHandlers(locations)}
	s.router = s.createRouter()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) createRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware)

	r.Get("/", s.handlers.Index)
	r.Get("/locations/{locationID}", s.handlers.Redirect)
	r.Route("/api", func(r chi.Router) {
		r.Get("/locations", s.handlers.ListJSON)
		r.Get("/locations/{locationID}", s.handlers.ResolveJSON)
	})

	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
