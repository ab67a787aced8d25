// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	service "github.com/okian/bestxi/internal/app"
	"github.com/okian/bestxi/internal/domain/types"
	"github.com/okian/bestxi/pkg/logger"
	"golang.org/x/time/rate"
)

// StatusMessage is returned by GET / so clients can probe the backend.
const StatusMessage = "bestxi selector running"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	SelectBestXI(ctx context.Context, q service.Query) (service.Result, error)
	Venues() []types.Venue
}

// Server wires HTTP routes for the business API.
type Server struct {
	statusHandler    *StatusHandler
	bestXIHandler    *BestXIHandler
	venuesHandler    *VenuesHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *dashboardHandler

	limiter        *rate.Limiter
	requestTimeout time.Duration
	corsOrigins    []string
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		statusHandler:    NewStatusHandler(),
		venuesHandler:    NewVenuesHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: newDashboardHandler(),
		corsOrigins:      []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	s.bestXIHandler = NewBestXIHandler(deps, s.requestTimeout, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	bestXI := s.bestXIHandler.HandleGetBestXI
	if s.limiter != nil {
		bestXI = RateLimitMiddleware(bestXI, s.limiter, "best_xi")
	}

	mux.HandleFunc("/best-xi", MetricsMiddleware(bestXI, "best_xi"))
	mux.HandleFunc("/venues", MetricsMiddleware(s.venuesHandler.HandleGetVenues, "venues"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/{$}", MetricsMiddleware(s.statusHandler.HandleStatus, "root"))
}

// Handler wraps h with request IDs and CORS for the configured origins.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestIDMiddleware(CORSMiddleware(s.corsOrigins)(h))
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	writeErrorDetails(w, status, code, err, nil)
}

func writeErrorDetails(w http.ResponseWriter, status int, code string, err error, details map[string]string) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, Details: details})
}
