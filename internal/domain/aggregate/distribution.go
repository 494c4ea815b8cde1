package aggregate

import (
	"math"
	"sort"

	"github.com/okian/podium/internal/domain/model"
)

// Summary describes the spread of a numeric field in one group, enough to
// draw a box plot.
type Summary struct {
	Key    string  `json:"key"`
	N      int     `json:"n"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// Distribution summarises field per value of by, skipping null values.
// Groups without any value are omitted.
func Distribution(records []model.ParticipationRecord, field, by model.Field) ([]Summary, error) {
	if err := requireNumeric(field); err != nil {
		return nil, err
	}
	g, err := groupOptional(records, by)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, g.len())
	for i, keys := range g.keys {
		values := make([]float64, 0, len(g.rows[i]))
		for _, row := range g.rows[i] {
			if v, ok := records[row].Value(field); ok {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		out = append(out, summarize(keys[0], values))
	}
	return out, nil
}

func summarize(key string, values []float64) Summary {
	sort.Float64s(values)
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Summary{
		Key:    key,
		N:      len(values),
		Min:    values[0],
		Q1:     quantile(values, 0.25),
		Median: quantile(values, 0.5),
		Q3:     quantile(values, 0.75),
		Max:    values[len(values)-1],
		Mean:   sum / float64(len(values)),
	}
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
