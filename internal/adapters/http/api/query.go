package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/model"
)

// openYear bounds a year range given only one end.
const openYear = 9999

// Query parameter names shared by every view.
const (
	paramYearMin         = "year_min"
	paramYearMax         = "year_max"
	paramType            = "type"
	paramNOC             = "noc"
	paramCountry         = "country"
	paramMedal           = "medal"
	paramGender          = "gender"
	paramDisciplineGroup = "discipline_group"
	paramDiscipline      = "discipline"
)

// parsePredicate builds a filter predicate from query parameters. Value
// checks beyond integer parsing are left to Predicate.Validate.
func parsePredicate(q url.Values) (filter.Predicate, error) {
	p := filter.Predicate{
		GamesType:       q.Get(paramType),
		Country:         firstOf(q, paramNOC, paramCountry),
		Medal:           q.Get(paramMedal),
		Genders:         multiValue(q, paramGender),
		DisciplineGroup: q.Get(paramDisciplineGroup),
		Discipline:      q.Get(paramDiscipline),
	}

	minStr, maxStr := q.Get(paramYearMin), q.Get(paramYearMax)
	if minStr == "" && maxStr == "" {
		return p, nil
	}
	yr := filter.YearRange{Min: 0, Max: openYear}
	if minStr != "" {
		v, err := strconv.Atoi(strings.TrimSpace(minStr))
		if err != nil {
			return filter.Predicate{}, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, paramYearMin)
		}
		yr.Min = v
	}
	if maxStr != "" {
		v, err := strconv.Atoi(strings.TrimSpace(maxStr))
		if err != nil {
			return filter.Predicate{}, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, paramYearMax)
		}
		yr.Max = v
	}
	p.Years = &yr
	return p, nil
}

// parseLimit reads a non-negative n. Absent means 0, the server default.
func parseLimit(q url.Values) (int, error) {
	s := strings.TrimSpace(q.Get("n"))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: n must be a non-negative integer", ErrBadRequest)
	}
	return n, nil
}

// parseSpec reads an aggregation spec: mode, group_by, distinct and field.
func parseSpec(q url.Values) (aggregate.Spec, error) {
	mode := aggregate.Mode(strings.TrimSpace(q.Get("mode")))
	if mode == "" {
		return aggregate.Spec{}, fmt.Errorf("%w: mode is required", ErrBadRequest)
	}
	spec := aggregate.Spec{
		Mode:     mode,
		Distinct: model.Field(strings.TrimSpace(q.Get("distinct"))),
		Field:    model.Field(strings.TrimSpace(q.Get("field"))),
	}
	for _, f := range multiValue(q, "group_by") {
		spec.GroupBy = append(spec.GroupBy, model.Field(f))
	}
	return spec, nil
}

// multiValue collects repeated and comma separated values of key.
func multiValue(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func firstOf(q url.Values, keys ...string) string {
	for _, k := range keys {
		if v := q.Get(k); v != "" {
			return v
		}
	}
	return ""
}
