// Package api - Thin, deterministic API layer
// The API is ONLY responsible for: input ingestion, engine orchestration, output serialization.
// The API NEVER performs pricing logic.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"translation-quote/api/envelope"
	v1 "translation-quote/api/v1"
	"translation-quote/core/engine"
	"translation-quote/internal/logging"
	"translation-quote/internal/metrics"
)

// Options configures a Server
type Options struct {
	Version string

	// Metrics records request metrics; nil disables them
	Metrics *metrics.Metrics

	// Gatherer backs GET /metrics; nil disables the route
	Gatherer prometheus.Gatherer

	// Audit records every call; nil uses the zap audit logger
	Audit envelope.AuditLogger

	// Clock supplies "now" for requests that do not pin it; nil uses time.Now
	Clock func() time.Time

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the API server
type Server struct {
	router  chi.Router
	engine  *engine.Engine
	opts    Options
	started time.Time
}

// NewServer creates a new API server
func NewServer(eng *engine.Engine, opts Options) *Server {
	if opts.Audit == nil {
		opts.Audit = envelope.ZapAuditLogger{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	s := &Server{
		router:  chi.NewRouter(),
		engine:  eng,
		opts:    opts,
		started: opts.Clock(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.observe)
	s.router.Use(middleware.Recoverer)

	// Core endpoints
	s.router.Mount("/v1", v1.NewHandler(s.engine, s.opts.Version, s.opts.Clock).Routes())

	// Supporting endpoints
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/version", s.handleVersion)
	if s.opts.Gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{}))
	}
}

// observe records metrics and an audit entry for every request
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		r = r.WithContext(logging.NewContext(r.Context(),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unknown"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.opts.Metrics.ObserveHTTP(r.Method, route, status, elapsed)

		// scrapes would drown the audit log
		if route == "/metrics" {
			return
		}
		s.opts.Audit.Log(envelope.AuditEntry{
			Timestamp:   start.UTC(),
			RequestID:   middleware.GetReqID(r.Context()),
			Method:      r.Method,
			Route:       route,
			Status:      status,
			Fingerprint: ww.Header().Get(v1.FingerprintHeader),
			ClientIP:    r.RemoteAddr,
			UserAgent:   r.UserAgent(),
			DurationMs:  elapsed.Milliseconds(),
		})
	})
}

// handleHealth handles GET /health. The regime is loaded so a broken
// regime file reports unhealthy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	regime, err := s.engine.Regime(r.Context())
	if err != nil {
		envelope.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "unhealthy",
			"version": s.opts.Version,
			"error":   err.Error(),
		})
		return
	}
	envelope.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"version": s.opts.Version,
		"regime":  regime.ID,
		"uptime":  s.opts.Clock().Sub(s.started).Round(time.Second).String(),
	})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	envelope.WriteJSON(w, http.StatusOK, map[string]string{
		"version":     s.opts.Version,
		"engine":      "translation-quote",
		"api_version": "v1",
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Info("api shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
