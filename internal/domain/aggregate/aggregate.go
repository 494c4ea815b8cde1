// Package aggregate computes grouped statistics over a filtered view.
//
// Grouping preserves the order in which groups first appear in the input, so
// every ranking built on top of it breaks ties by input order.
package aggregate

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// Mode selects the statistic Aggregate computes.
type Mode string

// Aggregation modes.
const (
	ModeRowCount      Mode = "row_count"
	ModeDistinctCount Mode = "distinct_count"
	ModeMean          Mode = "mean"
	ModeMedalTally    Mode = "medal_tally"
)

// Spec describes one aggregation request.
type Spec struct {
	Mode    Mode          `json:"mode"`
	GroupBy []model.Field `json:"group_by,omitempty"`
	// Distinct is the key counted by ModeDistinctCount; defaults to name.
	Distinct model.Field `json:"distinct,omitempty"`
	// Field is the numeric column averaged by ModeMean.
	Field model.Field `json:"field,omitempty"`
}

// Result holds the rows of exactly one mode.
type Result struct {
	Mode    Mode       `json:"mode"`
	Counts  []CountRow `json:"counts,omitempty"`
	Means   []MeanRow  `json:"means,omitempty"`
	Tallies []Tally    `json:"tallies,omitempty"`
}

// Aggregate dispatches spec to the matching aggregation.
func Aggregate(records []model.ParticipationRecord, spec Spec) (Result, error) {
	res := Result{Mode: spec.Mode}
	var err error
	switch spec.Mode {
	case ModeRowCount:
		res.Counts, err = Count(records, spec.GroupBy...)
	case ModeDistinctCount:
		key := spec.Distinct
		if key == "" {
			key = model.FieldName
		}
		res.Counts, err = CountDistinct(records, key, spec.GroupBy...)
	case ModeMean:
		var by model.Field
		if len(spec.GroupBy) > 1 {
			return Result{}, fmt.Errorf("%w: mean groups by at most one field", ErrInvalidSpec)
		}
		if len(spec.GroupBy) == 1 {
			by = spec.GroupBy[0]
		}
		res.Means, err = Mean(records, spec.Field, by)
	case ModeMedalTally:
		res.Tallies = MedalTally(records)
	default:
		return Result{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidSpec, spec.Mode)
	}
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
