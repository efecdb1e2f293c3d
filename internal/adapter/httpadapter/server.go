package httpadapter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/powerplant/plant-advisor/internal/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the advisor API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	api        *api
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and the
// /api/v1 routes. A nil validator skips schema checks on request bodies.
func NewServer(addr string, svc Advisor, validator BodyValidator, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 20 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		api:     &api{svc: svc, validator: validator, logger: logger},
		logger:  logger,
		metrics: metrics,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	s.route(mux, "GET /api/v1/location", s.api.handleLocation)
	s.route(mux, "GET /api/v1/locations/recent", s.api.handleRecentLocations)
	s.route(mux, "POST /api/v1/recommendations", s.api.handleRecommendations)
	s.route(mux, "GET /api/v1/nurseries", s.api.handleNurseries)
	s.route(mux, "POST /api/v1/shopping-list", s.api.handleShoppingList)
	s.route(mux, "GET /api/v1/advice", s.api.handleAdvice)
	s.route(mux, "GET /api/v1/conditions", s.api.handleConditions)
	s.route(mux, "GET /api/v1/plants/search", s.api.handlePlantSearch)
	s.route(mux, "GET /api/v1/plants/{id}", s.api.handlePlant)
	s.route(mux, "GET /api/v1/distance", s.api.handleDistance)
	s.route(mux, "GET /api/v1/suggest", s.api.handleSuggest)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// route registers h under pattern and counts responses by status code.
func (s *Server) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(pattern, strconv.Itoa(rec.status)).Inc()
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

// ReadinessFunc adapts a function to sharedobs.ReadinessChecker.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

// AllReady reports ready only when every checker does. Nil checkers are
// skipped.
func AllReady(checkers ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return ReadinessFunc(func(ctx context.Context) error {
		var errs []error
		for _, c := range checkers {
			if c == nil {
				continue
			}
			if err := c.CheckReadiness(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
