// Package server implements the permnet HTTP API.
//
// Routes:
//
//	POST   /v1/synthesize            synthesize one permutation
//	POST   /v1/synthesize/batch      synthesize many permutations concurrently
//	POST   /v1/route                 route values through a network
//	POST   /v1/networks              synthesize (or accept) and store a network
//	GET    /v1/networks/{id}         fetch a stored network
//	GET    /v1/networks/{id}/render  render a stored network (?format=svg)
//	DELETE /v1/networks/{id}         delete a stored network
//	GET    /healthz                  liveness and build info
//	GET    /metrics                  Prometheus metrics
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/permnet/pkg/pipeline"
	"github.com/matzehuels/permnet/pkg/store"
)

// Defaults for [Config] fields left zero.
const (
	DefaultMaxSize      = 4096
	DefaultBatchWorkers = 4
	DefaultMaxBatch     = 256
	DefaultMaxBodyBytes = 8 << 20
	shutdownTimeout     = 10 * time.Second
)

// Config configures a [Server].
type Config struct {
	Runner       *pipeline.Runner
	Store        store.Store
	Logger       *log.Logger
	Registry     *prometheus.Registry // nil creates a private registry
	MaxSize      int                  // largest accepted permutation
	BatchWorkers int
	MaxBatch     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the API. Create it with [New].
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *Metrics

	maxSize      int
	batchWorkers int
	maxBatch     int
	readTimeout  time.Duration
	writeTimeout time.Duration
}

// New creates a server and registers its Prometheus collectors.
func New(cfg Config) (*Server, error) {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.BatchWorkers <= 0 {
		cfg.BatchWorkers = DefaultBatchWorkers
	}
	if cfg.MaxBatch <= 0 {
		cfg.MaxBatch = DefaultMaxBatch
	}

	metrics, err := NewMetrics(cfg.Registry)
	if err != nil {
		return nil, err
	}
	return &Server{
		runner:       cfg.Runner,
		store:        cfg.Store,
		logger:       cfg.Logger,
		registry:     cfg.Registry,
		metrics:      metrics,
		maxSize:      cfg.MaxSize,
		batchWorkers: cfg.BatchWorkers,
		maxBatch:     cfg.MaxBatch,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

// Metrics returns the server's collectors. Callers install them as
// observability hooks to record pipeline and cache events.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	handle := func(method, pattern string, h http.HandlerFunc) {
		r.Method(method, pattern, s.instrument(method, pattern, h))
	}

	handle(http.MethodPost, "/v1/synthesize", s.handleSynthesize)
	handle(http.MethodPost, "/v1/synthesize/batch", s.handleSynthesizeBatch)
	handle(http.MethodPost, "/v1/route", s.handleRoute)
	handle(http.MethodPost, "/v1/networks", s.handleCreateNetwork)
	handle(http.MethodGet, "/v1/networks/{id}", s.handleGetNetwork)
	handle(http.MethodGet, "/v1/networks/{id}/render", s.handleRenderNetwork)
	handle(http.MethodDelete, "/v1/networks/{id}", s.handleDeleteNetwork)
	handle(http.MethodGet, "/healthz", s.handleHealth)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
