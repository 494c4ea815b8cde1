package repository

import (
	"time"

	"github.com/okian/podium/pkg/logger"
)

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithLogger sets the logger used to report load progress.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDelimiter sets the field delimiter of both tables.
func WithDelimiter(r rune) Option {
	return func(s *CSVStore) {
		if r != 0 && r != '\n' && r != '\r' && r != '"' {
			s.delimiter = r
		}
	}
}

// WithClock overrides the clock used to stamp Dataset.LoadedAt.
func WithClock(now func() time.Time) Option {
	return func(s *CSVStore) {
		if now != nil {
			s.now = now
		}
	}
}
