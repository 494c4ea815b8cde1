package aggregate

import (
	"fmt"

	"github.com/okian/podium/internal/domain/model"
)

// CountRow is one group of a categorical count.
type CountRow struct {
	Keys  []string `json:"keys"`
	Value int      `json:"value"`
}

func checkGroupBy(by []model.Field) error {
	if len(by) < 1 || len(by) > 2 {
		return fmt.Errorf("%w: group by one or two fields, got %d", ErrInvalidSpec, len(by))
	}
	return requireCategorical(by...)
}

// Count returns the number of rows (participations) per group.
func Count(records []model.ParticipationRecord, by ...model.Field) ([]CountRow, error) {
	if err := checkGroupBy(by); err != nil {
		return nil, err
	}
	g := groupRecords(records, by)
	out := make([]CountRow, 0, g.len())
	for i, keys := range g.keys {
		out = append(out, CountRow{Keys: keys, Value: len(g.rows[i])})
	}
	return out, nil
}

// CountDistinct returns the number of distinct values of key per group, e.g.
// unique athletes when key is name. Empty key values are not counted.
func CountDistinct(records []model.ParticipationRecord, key model.Field, by ...model.Field) ([]CountRow, error) {
	if err := checkGroupBy(by); err != nil {
		return nil, err
	}
	if err := requireCategorical(key); err != nil {
		return nil, err
	}
	g := groupRecords(records, by)
	out := make([]CountRow, 0, g.len())
	for i, keys := range g.keys {
		out = append(out, CountRow{Keys: keys, Value: distinctIn(records, g.rows[i], key)})
	}
	return out, nil
}

func distinctIn(records []model.ParticipationRecord, rows []int, key model.Field) int {
	seen := make(map[string]struct{}, len(rows))
	for _, i := range rows {
		v, _ := records[i].Category(key)
		if v == "" {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Overview summarises a view for the headline metrics.
type Overview struct {
	Rows      int `json:"rows"`
	Athletes  int `json:"unique_athletes"`
	Countries int `json:"participating_countries"`
}

// Summarize counts rows, distinct athletes and distinct NOCs.
func Summarize(records []model.ParticipationRecord) Overview {
	athletes := make(map[string]struct{})
	countries := make(map[string]struct{})
	for i := range records {
		if records[i].Name != "" {
			athletes[records[i].Name] = struct{}{}
		}
		if records[i].NOC != "" {
			countries[records[i].NOC] = struct{}{}
		}
	}
	return Overview{Rows: len(records), Athletes: len(athletes), Countries: len(countries)}
}
