package aggregate

import (
	"sort"
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// Distinct returns the sorted non-empty values of a categorical field. Years
// sort numerically, everything else lexically.
func Distinct(records []model.ParticipationRecord, field model.Field) ([]string, error) {
	if err := requireCategorical(field); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range records {
		v, _ := records[i].Category(field)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if field == model.FieldYear {
		sort.Slice(out, func(i, j int) bool {
			a, _ := strconv.Atoi(out[i])
			b, _ := strconv.Atoi(out[j])
			return a < b
		})
		return out, nil
	}
	sort.Strings(out)
	return out, nil
}

// YearBounds returns the smallest and largest year in records. ok is false
// for an empty input.
func YearBounds(records []model.ParticipationRecord) (lo, hi int, ok bool) {
	for i := range records {
		y := records[i].Year
		if !ok {
			lo, hi, ok = y, y, true
			continue
		}
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi, ok
}
