// Package server exposes the analytics engine over HTTP. It is the report
// assembler: it composes the individual analytics views into a dashboard
// payload and serializes everything as JSON.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ledgersight/ledgersight/internal/analytics"
)

// Server routes dashboard requests to the analytics service.
type Server struct {
	svc *analytics.Service
	log zerolog.Logger
}

// New creates a Server over an analytics service.
func New(svc *analytics.Service, log zerolog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Router builds the chi router with all analytics endpoints registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Get("/api/analytics/trend", s.handleTrend)
	r.Get("/api/analytics/metrics", s.handleMetrics)
	r.Get("/api/analytics/composition", s.handleComposition)
	r.Get("/api/analytics/recurring", s.handleRecurring)
	r.Get("/api/analytics/flexible", s.handleFlexible)
	r.Get("/api/dashboard", s.handleDashboard)

	return r
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("analytics server listening")
	return http.ListenAndServe(addr, s.Router())
}
