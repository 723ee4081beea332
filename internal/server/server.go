// Package server exposes the flowgrid pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz     liveness and build version
//	POST /v1/layout   lay out one document (text body or JSON options)
//	POST /v1/batch    lay out many documents in parallel
//
// Errors are JSON objects {"code", "message"} whose status follows
// [errors.HTTPStatus].
//
// [errors.HTTPStatus]: github.com/matzehuels/flowgrid/pkg/errors.HTTPStatus
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/flowgrid/pkg/errors"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr              = ":8080"
	DefaultMaxBodyBytes      = errors.MaxSourceBytes
	DefaultMaxBatchDocuments = 100
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Config configures the HTTP server. Zero fields take the defaults.
type Config struct {
	Addr              string
	MaxBodyBytes      int64
	MaxBatchDocuments int
	// BatchLimit bounds parallel documents per batch request (0 = GOMAXPROCS).
	BatchLimit int
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxBatchDocuments <= 0 {
		c.MaxBatchDocuments = DefaultMaxBatchDocuments
	}
}

// Server serves the pipeline API. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	cfg    Config
}

// New creates a server around runner. A nil logger selects log.Default().
func New(runner *pipeline.Runner, logger *log.Logger, cfg Config) *Server {
	if logger == nil {
		logger = log.Default()
	}
	cfg.setDefaults()
	return &Server{runner: runner, logger: logger, cfg: cfg}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/batch", s.handleBatch)
	})

	return r
}

// Run listens on the configured address until ctx is done, then shuts the
// server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
