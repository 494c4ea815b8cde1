// Package service provides the analytics service behind the HTTP API. Every
// view runs the same pipeline: filter the record store, aggregate the
// surviving rows and, for the map, join the result with coordinates.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	"github.com/okian/podium/pkg/metrics"
)

// Pipeline stage names used in metrics.
const (
	stageFilter    = "filter"
	stageAggregate = "aggregate"
	stageJoin      = "join"
)

// Service implements the API dependencies for the Olympics dashboard.
type Service struct {
	mu sync.RWMutex

	loader    repository.Loader
	dataset   *repository.Dataset
	mainPath  string
	coordPath string

	// Configuration
	defaultTopN    int
	maxTopN        int
	topDisciplines int

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		mainPath:       "jjoo.csv",
		coordPath:      "noc_coordinates.csv",
		defaultTopN:    15,
		maxTopN:        50,
		topDisciplines: 20,
		logger:         nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the dataset once. Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.loader == nil {
		s.loader = repository.NewCSVStore(repository.WithLogger(s.logger.Named("store")))
	}

	if s.dataset == nil {
		s.logger.Info(ctx, "loading dataset",
			logger.String("data_path", s.mainPath),
			logger.String("coords_path", s.coordPath))
		ds, err := s.loader.Load(ctx, s.mainPath, s.coordPath)
		if err != nil {
			metrics.RecordError("service", "load")
			return err
		}
		s.dataset = ds
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "analytics service started",
		logger.Int("rows", len(s.dataset.Records())),
		logger.Int("countries", len(s.dataset.Coordinates())),
		logger.Int("default_top_n", s.defaultTopN),
		logger.Int("max_top_n", s.maxTopN),
	)
	return nil
}

// Stop marks the service as stopped. The loaded dataset is kept so a later
// Start does not reload it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// Ready reports whether views can be served.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) snapshot() (*repository.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.dataset == nil {
		return nil, ErrNotStarted
	}
	return s.dataset, nil
}

// filtered validates p and runs the filter stage for view.
func (s *Service) filtered(ctx context.Context, view string, p filter.Predicate) ([]model.ParticipationRecord, *repository.Dataset, error) {
	ds, err := s.snapshot()
	if err != nil {
		metrics.RecordView(view, "error")
		return nil, nil, err
	}
	if err := p.Validate(); err != nil {
		metrics.RecordView(view, "error")
		return nil, nil, err
	}

	start := time.Now()
	rows := filter.Apply(ds.Records(), p)
	observeStage(stageFilter, start)
	metrics.RecordFilteredRows(len(rows))

	s.logger.Debug(ctx, "filter applied",
		logger.String("view", view),
		logger.Int("rows", len(rows)),
		logger.Int("total", len(ds.Records())))
	return rows, ds, nil
}

// finish records the outcome of a view and passes err through.
func finish(view string, rows int, err error) error {
	switch {
	case err != nil:
		metrics.RecordView(view, "error")
		metrics.RecordError("service", view)
	case rows == 0:
		metrics.RecordView(view, "empty")
	default:
		metrics.RecordView(view, "ok")
	}
	return err
}

func observeStage(stage string, start time.Time) {
	metrics.RecordStageDuration(stage, float64(time.Since(start).Microseconds())/1000)
}

// clampTopN maps a requested list size onto the configured limits.
func (s *Service) clampTopN(n int) int {
	if n <= 0 {
		return s.defaultTopN
	}
	if n > s.maxTopN {
		return s.maxTopN
	}
	return n
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"dataPath":       s.mainPath,
		"coordsPath":     s.coordPath,
		"defaultTopN":    s.defaultTopN,
		"maxTopN":        s.maxTopN,
		"topDisciplines": s.topDisciplines,
	}

	if s.started && s.dataset != nil {
		st := s.dataset.Stats
		stats["rows"] = st.Rows
		stats["skippedRows"] = st.SkippedRows
		stats["countries"] = st.Countries
		stats["droppedCoordinates"] = st.DroppedCoordinates
		stats["duplicateCoordinates"] = st.DuplicateCoordinates
		stats["loadedAt"] = s.dataset.LoadedAt.UTC().Format(time.RFC3339)
		stats["uptime"] = time.Since(s.startedAt).Round(time.Second).String()
	}

	return stats
}
