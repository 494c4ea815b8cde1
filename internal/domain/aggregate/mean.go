package aggregate

import (
	"github.com/okian/podium/internal/domain/model"
)

// AllKey labels the single group produced when no grouping field is given.
const AllKey = "All"

// MeanRow is the average of a numeric field within one group.
type MeanRow struct {
	Key  string  `json:"key"`
	Mean float64 `json:"mean"`
	// N is the number of non-null values that contributed.
	N int `json:"n"`
}

// Mean averages field per value of by. Rows whose field is null are left out
// of both the sum and the divisor; groups with no values at all are omitted.
// An empty by puts every row into a single AllKey group.
func Mean(records []model.ParticipationRecord, field, by model.Field) ([]MeanRow, error) {
	if err := requireNumeric(field); err != nil {
		return nil, err
	}
	g, err := groupOptional(records, by)
	if err != nil {
		return nil, err
	}

	out := make([]MeanRow, 0, g.len())
	for i, keys := range g.keys {
		var sum float64
		n := 0
		for _, row := range g.rows[i] {
			if v, ok := records[row].Value(field); ok {
				sum += v
				n++
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, MeanRow{Key: keys[0], Mean: sum / float64(n), N: n})
	}
	return out, nil
}

// groupOptional groups by a single field, or returns one AllKey group.
func groupOptional(records []model.ParticipationRecord, by model.Field) (*groups, error) {
	if by == "" {
		g := newGroups()
		for i := range records {
			g.add([]string{AllKey}, i)
		}
		return g, nil
	}
	if err := requireCategorical(by); err != nil {
		return nil, err
	}
	return groupRecords(records, []model.Field{by}), nil
}
