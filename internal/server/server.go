// Package server provides the HTTP API for Fluent.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/fluentsearch/fluent/internal/config"
	"github.com/fluentsearch/fluent/internal/corpus"
	"github.com/fluentsearch/fluent/internal/models"
)

// serverHeader identifies the product on every response.
const serverHeader = "Fluent 1.0.0"

// ModelRegistry is the read-only model surface the handlers need.
type ModelRegistry interface {
	Has(name string) bool
	DefaultName() string
	Names() []string
	Query(ctx context.Context, name, text string) ([]models.Match, error)
}

// Server is the HTTP server for the Fluent API. The registry and corpus
// store it holds are immutable after startup; handlers only read them.
type Server struct {
	registry ModelRegistry
	store    *corpus.Store
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(registry ModelRegistry, store *corpus.Store, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		registry: registry,
		store:    store,
		config:   cfg,
		logger:   logger,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleWelcome)
	r.Options("/fluent", s.handlePreflight)
	r.Options("/fluent/{modelName}", s.handlePreflight)
	r.Post("/fluent", s.handleQuery)
	r.Post("/fluent/{modelName}", s.handleQuery)
	r.Get("/health", s.handleHealth)

	return r
}
