package aggregate

import (
	"sort"
	"strings"
)

// TallyMetric names the column a tally ranking sorts on.
type TallyMetric string

// Sortable tally columns.
const (
	ByTotalMedals   TallyMetric = "Total_Medals"
	ByTotalAthletes TallyMetric = "Total_Athletes"
	ByGold          TallyMetric = "Gold"
	BySilver        TallyMetric = "Silver"
	ByBronze        TallyMetric = "Bronze"
)

// TallyMetrics lists the sortable columns in display order.
var TallyMetrics = []TallyMetric{ByTotalMedals, ByTotalAthletes, ByGold, BySilver, ByBronze}

// ParseTallyMetric accepts either the column name or its snake_case form.
func ParseTallyMetric(s string) (TallyMetric, error) {
	if strings.TrimSpace(s) == "" {
		return ByTotalMedals, nil
	}
	for _, m := range TallyMetrics {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", &InvalidFieldError{Field: s, Role: "sortable tally"}
}

// Value returns the metric of t.
func (m TallyMetric) Value(t Tally) int {
	switch m {
	case ByTotalAthletes:
		return t.TotalAthletes
	case ByGold:
		return t.Gold
	case BySilver:
		return t.Silver
	case ByBronze:
		return t.Bronze
	default:
		return t.TotalMedals
	}
}

// TopTallies returns the n tallies with the highest metric. The sort is
// stable, so ties keep their input order. n <= 0 returns all of them.
func TopTallies(tallies []Tally, by TallyMetric, n int) []Tally {
	out := make([]Tally, len(tallies))
	copy(out, tallies)
	sort.SliceStable(out, func(i, j int) bool {
		return by.Value(out[i]) > by.Value(out[j])
	})
	return truncate(out, n)
}

// TopCounts returns the n rows with the highest value, ties in input order.
func TopCounts(rows []CountRow, n int) []CountRow {
	out := make([]CountRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return truncate(out, n)
}

// SortMeansDesc orders mean rows from highest to lowest average, stably.
func SortMeansDesc(rows []MeanRow) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Mean > rows[j].Mean })
}

func truncate[T any](s []T, n int) []T {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// String implements fmt.Stringer.
func (m TallyMetric) String() string { return string(m) }
