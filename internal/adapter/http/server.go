package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/couchcryptid/hazard-zone-service/internal/query"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HazardQuerier is the query surface the API exposes.
type HazardQuerier interface {
	QueryPoint(ctx context.Context, point domain.GeoPoint, opts query.Options) (query.Result, error)
	Zones(level domain.RiskLevel) ([]domain.HazardZone, error)
	Zone(name string) (domain.HazardZone, error)
}

// Server exposes the hazard API along with health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	querier    HazardQuerier
	maxLimit   int
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /api/v1/hazards routes plus
// /healthz, /readyz, and /metrics. maxLimit caps the per-query result limit.
func NewServer(addr string, querier HazardQuerier, ready sharedobs.ReadinessChecker, maxLimit int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      requestLogger(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		querier:  querier,
		maxLimit: maxLimit,
		logger:   logger,
	}

	mux.HandleFunc("GET /api/v1/hazards/query", s.handleQuery)
	mux.HandleFunc("GET /api/v1/hazards", s.handleList)
	mux.HandleFunc("GET /api/v1/hazards/{name}", s.handleZone)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": msg})
}

// requestLogger logs one line per request at debug level, and at warn for 5xx.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		level := slog.LevelDebug
		if ww.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(r.Context(), level, "request processed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
