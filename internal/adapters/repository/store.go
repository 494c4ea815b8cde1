// Package repository loads and holds the read-only Olympic record tables.
package repository

import (
	"context"
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Table names used in errors, logs and metrics.
const (
	TableParticipations = "participations"
	TableCoordinates    = "coordinates"
)

// Stats describes what a load produced.
type Stats struct {
	Rows                 int `json:"rows"`
	SkippedRows          int `json:"skipped_rows"`
	Countries            int `json:"countries"`
	DroppedCoordinates   int `json:"dropped_coordinates"`
	DuplicateCoordinates int `json:"duplicate_coordinates"`
}

// Dataset is the immutable result of a load. The slices returned by Records
// and Coordinates are shared; callers must not modify them.
type Dataset struct {
	records  []model.ParticipationRecord
	coords   []model.CountryMetadata
	LoadedAt time.Time
	Stats    Stats
}

// NewDataset builds a Dataset from already parsed tables.
func NewDataset(records []model.ParticipationRecord, coords []model.CountryMetadata, loadedAt time.Time) *Dataset {
	return &Dataset{
		records:  records,
		coords:   coords,
		LoadedAt: loadedAt,
		Stats:    Stats{Rows: len(records), Countries: len(coords)},
	}
}

// Records returns the participation table.
func (d *Dataset) Records() []model.ParticipationRecord { return d.records }

// Coordinates returns the coordinate table with unusable rows removed.
func (d *Dataset) Coordinates() []model.CountryMetadata { return d.coords }

// Loader reads both source tables.
type Loader interface {
	// Load reads and validates the participation and coordinate tables.
	// Returns a *NotFoundError if a file is absent and a *SchemaError if a
	// required column is missing.
	Load(ctx context.Context, mainPath, coordPath string) (*Dataset, error)
}
