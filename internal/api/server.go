// Package api exposes the catalog, favorites and mortgage calculator as a
// local JSON API.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/logger"
)

// NewRouter builds the chi router for h.
func NewRouter(h *Handler, log logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", h.SearchProperties)
			r.Get("/{id}", h.GetProperty)
		})
		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.GetFavorites)
			r.Post("/", h.AddFavorite)
			r.Delete("/", h.ClearFavorites)
			r.Delete("/{id}", h.RemoveFavorite)
		})
		r.Post("/mortgage", h.CalculateMortgage)
	})

	return r
}

// Server is the local REST API server.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// NewServer creates a server listening on cfg's host and port.
func NewServer(cfg config.ServerConfig, h *Handler, baseLogger logger.Logger) *Server {
	log := baseLogger.WithFields(logger.Fields{"component": "api"})
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler:           NewRouter(h, log),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return &Server{httpServer: srv, logger: log}
}

// Addr is the configured listen address.
func (s *Server) Addr() string { return s.httpServer.Addr }

// Start serves until Stop is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", logger.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server", nil)
	return s.httpServer.Shutdown(ctx)
}
