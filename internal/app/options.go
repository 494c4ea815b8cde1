package service

import (
	"github.com/okian/podium/internal/adapters/repository"
	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader sets the loader used by Start.
func WithLoader(loader repository.Loader) Option {
	return func(s *Service) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// WithDataPaths sets the participation and coordinate table locations.
func WithDataPaths(mainPath, coordPath string) Option {
	return func(s *Service) {
		if mainPath != "" {
			s.mainPath = mainPath
		}
		if coordPath != "" {
			s.coordPath = coordPath
		}
	}
}

// WithTopN sets the default and maximum size of ranked lists.
func WithTopN(defaultN, maxN int) Option {
	return func(s *Service) {
		if defaultN > 0 && maxN >= defaultN {
			s.defaultTopN = defaultN
			s.maxTopN = maxN
		}
	}
}

// WithTopDisciplines sets how many disciplines the age view keeps.
func WithTopDisciplines(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topDisciplines = k
		}
	}
}

// WithDataset installs an already loaded dataset; Start then skips loading.
func WithDataset(ds *repository.Dataset) Option {
	return func(s *Service) {
		s.dataset = ds
	}
}
