// Package server exposes subpanel translation and field logic over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/opmodel/legacyui/internal/fieldlogic"
	"github.com/opmodel/legacyui/internal/output"
	"github.com/opmodel/legacyui/internal/subpanel"
)

// Translator builds the subpanel schema of a legacy module.
type Translator interface {
	Translate(module string) *subpanel.Schema
}

// LogicRunner runs the logic a field declares for a view mode.
type LogicRunner interface {
	RunLogic(ctx context.Context, field *fieldlogic.Field, mode fieldlogic.ViewMode, record *fieldlogic.Record) []string
}

// ModuleMapper maps frontend module names to legacy ones.
type ModuleMapper interface {
	ToLegacy(module string) string
}

// Reloader drops cached metadata so the next translation rereads it.
type Reloader interface {
	Reload()
}

// SchemaVersioner reports the migration version of the field definition store.
type SchemaVersioner interface {
	MigrationVersion() (int64, error)
}

// Config holds the collaborators of the server.
type Config struct {
	Addr       string
	Translator Translator
	Modules    ModuleMapper
	Logic      LogicRunner

	// Metadata, when set, mounts POST /v1/reload.
	Metadata Reloader
	// Store, when set, adds the store schema version to /healthz.
	Store SchemaVersioner

	// ShutdownTimeout bounds graceful shutdown. Zero means 5s.
	ShutdownTimeout time.Duration
}

// Server is the legacyui HTTP server.
type Server struct {
	cfg     Config
	handler http.Handler
}

// New returns a Server with its routes mounted.
func New(cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{cfg: cfg}
	s.handler = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestID,
		logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/subpanels/{module}", s.handleSubpanels)
		r.Post("/field-logic/{mode}", s.handleFieldLogic)
		if s.cfg.Metadata != nil {
			r.Post("/reload", s.handleReload)
		}
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is cancelled.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	output.Info("starting server", "addr", ln.Addr().String())

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()

		output.Debug("shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
