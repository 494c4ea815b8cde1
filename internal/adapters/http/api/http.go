// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/join"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Ready() bool

	Overview(ctx context.Context, p filter.Predicate) (aggregate.Overview, error)
	ParticipationByYear(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error)
	DisciplinesByYear(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error)
	DisciplineTree(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error)
	MedalsByCountry(ctx context.Context, p filter.Predicate, sortBy string, n int) ([]aggregate.Tally, error)
	MedalMap(ctx context.Context, p filter.Predicate) ([]join.GeoPoint, error)
	AthleteDistribution(ctx context.Context, p filter.Predicate, field, groupBy string) ([]aggregate.Summary, error)
	HeightWeight(ctx context.Context, p filter.Predicate, color string) ([]aggregate.Point, error)
	AgeByDiscipline(ctx context.Context, p filter.Predicate) ([]aggregate.MeanRow, error)
	Summary(ctx context.Context, p filter.Predicate, field, groupBy string) ([]aggregate.MeanRow, error)
	Aggregate(ctx context.Context, p filter.Predicate, spec aggregate.Spec) (aggregate.Result, error)
	FilterOptions(ctx context.Context) (service.FilterOptions, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	viewsHandler  *ViewsHandler
	logger        logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger used for request logging.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler: NewHealthHandler(deps),
		statsHandler:  NewStatsHandler(statsProvider),
		viewsHandler:  NewViewsHandler(deps),
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(path, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(path, RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.logger))
	}

	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())
	route("/stats", "stats", s.statsHandler.HandleStats)

	v := s.viewsHandler
	route("/api/v1/options", "options", v.HandleOptions)
	route("/api/v1/overview", "overview", v.HandleOverview)
	route("/api/v1/participation", "participation", v.HandleParticipation)
	route("/api/v1/disciplines/by-year", "disciplines_by_year", v.HandleDisciplinesByYear)
	route("/api/v1/disciplines/tree", "discipline_tree", v.HandleDisciplineTree)
	route("/api/v1/disciplines/age", "age_by_discipline", v.HandleAgeByDiscipline)
	route("/api/v1/medals", "medals", v.HandleMedals)
	route("/api/v1/map", "map", v.HandleMap)
	route("/api/v1/athletes/distribution", "distribution", v.HandleDistribution)
	route("/api/v1/athletes/height-weight", "height_weight", v.HandleHeightWeight)
	route("/api/v1/summary", "summary", v.HandleSummary)
	route("/api/v1/aggregate", "aggregate", v.HandleAggregate)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps a pipeline error onto a status code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, filter.ErrInvalidPredicate), errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	case errors.Is(err, aggregate.ErrInvalidField):
		writeError(w, http.StatusBadRequest, "invalid_field", Wrap(op, err))
	case errors.Is(err, aggregate.ErrInvalidSpec):
		writeError(w, http.StatusBadRequest, "invalid_spec", Wrap(op, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
