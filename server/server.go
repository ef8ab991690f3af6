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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/zero-day-ai/firecheck"
	"github.com/zero-day-ai/firecheck/cache"
)

// Config holds the server settings.
type Config struct {
	// Addr is the HTTP listen address.
	// Default: :8080
	Addr string

	// GRPCHealthAddr enables the gRPC health service when set.
	GRPCHealthAddr string

	// MaxBodyBytes caps submitted documents.
	// Default: 1 MiB
	MaxBodyBytes int64

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds
	ShutdownTimeout time.Duration

	// Cache is pinged by /readyz. It should be the cache the checker uses.
	Cache cache.Cache

	Logger zerolog.Logger
}

// DefaultConfig returns default server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 10 * time.Second,
		Cache:           cache.Nop{},
		Logger:          zerolog.Nop(),
	}
}

// Server serves a Checker over HTTP.
type Server struct {
	checker *firecheck.Checker
	config  Config
	metrics *Metrics
	router  chi.Router
	logger  zerolog.Logger
}

// New creates a Server. Zero Config fields take their defaults.
func New(checker *firecheck.Checker, cfg Config) (*Server, error) {
	if checker == nil {
		return nil, errors.New("checker is required")
	}

	def := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = def.ShutdownTimeout
	}
	if cfg.Cache == nil {
		cfg.Cache = def.Cache
	}

	s := &Server{
		checker: checker,
		config:  cfg,
		metrics: NewMetrics(),
		logger:  cfg.Logger,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the Prometheus metrics of the server.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleLiveness)
	r.Get("/readyz", s.handleReadiness)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Get("/schema", s.handleSchema)
	})

	return r
}

// instrument logs every request and records the HTTP metrics under the
// matched route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RequestsTotal.WithLabelValues(route, fmt.Sprint(status)).Inc()
		s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())

		s.logger.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", elapsed).
			Msg("http request")
	})
}

// Run serves HTTP, and gRPC health when configured, until ctx is canceled,
// then shuts both down within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 2)

	var hs *healthServer
	if s.config.GRPCHealthAddr != "" {
		var err error
		hs, err = newHealthServer(s.config.GRPCHealthAddr, s.logger)
		if err != nil {
			_ = ln.Close()
			return err
		}
		go func() {
			if err := hs.serve(); err != nil {
				errCh <- err
			}
		}()
	}

	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("starting HTTP server")
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	s.logger.Info().Msg("shutting down")
	if hs != nil {
		hs.stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn().Err(err).Msg("graceful shutdown timed out, closing connections")
		_ = httpServer.Close()
	}

	return runErr
}
