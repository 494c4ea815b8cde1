package service

import (
	"context"
	"time"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/join"
	"github.com/okian/podium/internal/domain/model"
)

// FilterOptions lists the values a client can offer as filter choices.
type FilterOptions struct {
	YearMin          int      `json:"year_min"`
	YearMax          int      `json:"year_max"`
	Types            []string `json:"types"`
	Genders          []string `json:"genders"`
	Countries        []string `json:"countries"`
	Medals           []string `json:"medals"`
	DisciplineGroups []string `json:"discipline_groups"`
	Disciplines      []string `json:"disciplines"`
	SortMetrics      []string `json:"sort_metrics"`
}

// Overview returns the headline numbers of the filtered view.
func (s *Service) Overview(ctx context.Context, p filter.Predicate) (aggregate.Overview, error) {
	const view = "overview"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return aggregate.Overview{}, err
	}
	start := time.Now()
	out := aggregate.Summarize(rows)
	observeStage(stageAggregate, start)
	return out, finish(view, out.Rows, nil)
}

// ParticipationByYear counts participations per year and gender.
func (s *Service) ParticipationByYear(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error) {
	return s.counts(ctx, "participation", p, func(rows []model.ParticipationRecord) ([]aggregate.CountRow, error) {
		return aggregate.Count(rows, model.FieldYear, model.FieldGender)
	})
}

// DisciplinesByYear counts distinct disciplines held per year.
func (s *Service) DisciplinesByYear(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error) {
	return s.counts(ctx, "disciplines_by_year", p, func(rows []model.ParticipationRecord) ([]aggregate.CountRow, error) {
		return aggregate.CountDistinct(rows, model.FieldDiscipline, model.FieldYear)
	})
}

// DisciplineTree counts distinct athletes per discipline group and discipline.
func (s *Service) DisciplineTree(ctx context.Context, p filter.Predicate) ([]aggregate.CountRow, error) {
	return s.counts(ctx, "discipline_tree", p, func(rows []model.ParticipationRecord) ([]aggregate.CountRow, error) {
		return aggregate.CountDistinct(rows, model.FieldName, model.FieldDisciplineGrouped, model.FieldDiscipline)
	})
}

func (s *Service) counts(ctx context.Context, view string, p filter.Predicate,
	fn func([]model.ParticipationRecord) ([]aggregate.CountRow, error),
) ([]aggregate.CountRow, error) {
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := fn(rows)
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), err)
}

// MedalsByCountry ranks per-NOC medal tallies by sortBy and keeps the first n.
// n is clamped to the configured limits.
func (s *Service) MedalsByCountry(ctx context.Context, p filter.Predicate, sortBy string, n int) ([]aggregate.Tally, error) {
	const view = "medals"
	metric, err := aggregate.ParseTallyMetric(sortBy)
	if err != nil {
		return nil, finish(view, 0, err)
	}
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out := aggregate.TopTallies(aggregate.MedalTally(rows), metric, s.clampTopN(n))
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), nil)
}

// MedalMap joins medal tallies with coordinates, keeping located NOCs that
// won at least one medal.
func (s *Service) MedalMap(ctx context.Context, p filter.Predicate) ([]join.GeoPoint, error) {
	const view = "map"
	rows, ds, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	tallies := aggregate.MedalTally(rows)
	observeStage(stageAggregate, start)

	start = time.Now()
	out := join.ForMap(tallies, ds.Coordinates())
	observeStage(stageJoin, start)
	return out, finish(view, len(out), nil)
}

// AthleteDistribution summarises a numeric field per value of groupBy.
func (s *Service) AthleteDistribution(ctx context.Context, p filter.Predicate, field, groupBy string) ([]aggregate.Summary, error) {
	const view = "distribution"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := aggregate.Distribution(rows, model.Field(field), model.Field(groupBy))
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), err)
}

// HeightWeight projects athletes onto height and weight, coloured by color.
func (s *Service) HeightWeight(ctx context.Context, p filter.Predicate, color string) ([]aggregate.Point, error) {
	const view = "height_weight"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := aggregate.Points(rows, model.FieldHeight, model.FieldWeight, model.Field(color))
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), err)
}

// AgeByDiscipline averages age over the disciplines with the most distinct
// athletes, highest mean first.
func (s *Service) AgeByDiscipline(ctx context.Context, p filter.Predicate) ([]aggregate.MeanRow, error) {
	const view = "age_by_discipline"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	athletes, err := aggregate.CountDistinct(rows, model.FieldName, model.FieldDiscipline)
	if err != nil {
		return nil, finish(view, 0, err)
	}
	top := aggregate.TopCounts(athletes, s.topDisciplines)
	keep := make(map[string]struct{}, len(top))
	for _, r := range top {
		keep[r.Keys[0]] = struct{}{}
	}
	subset := make([]model.ParticipationRecord, 0, len(rows))
	for i := range rows {
		if _, ok := keep[rows[i].Discipline]; ok {
			subset = append(subset, rows[i])
		}
	}
	out, err := aggregate.Mean(subset, model.FieldAge, model.FieldDiscipline)
	if err == nil {
		aggregate.SortMeansDesc(out)
	}
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), err)
}

// Summary averages a numeric field per value of groupBy. An empty groupBy
// averages over the whole view.
func (s *Service) Summary(ctx context.Context, p filter.Predicate, field, groupBy string) ([]aggregate.MeanRow, error) {
	const view = "summary"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := aggregate.Mean(rows, model.Field(field), model.Field(groupBy))
	observeStage(stageAggregate, start)
	return out, finish(view, len(out), err)
}

// Aggregate runs an arbitrary aggregation spec over the filtered view.
func (s *Service) Aggregate(ctx context.Context, p filter.Predicate, spec aggregate.Spec) (aggregate.Result, error) {
	const view = "aggregate"
	rows, _, err := s.filtered(ctx, view, p)
	if err != nil {
		return aggregate.Result{}, err
	}
	start := time.Now()
	out, err := aggregate.Aggregate(rows, spec)
	observeStage(stageAggregate, start)
	return out, finish(view, len(out.Counts)+len(out.Means)+len(out.Tallies), err)
}

// FilterOptions lists the filter choices present in the whole dataset.
func (s *Service) FilterOptions(_ context.Context) (FilterOptions, error) {
	const view = "options"
	ds, err := s.snapshot()
	if err != nil {
		return FilterOptions{}, finish(view, 0, err)
	}
	records := ds.Records()

	var opts FilterOptions
	opts.YearMin, opts.YearMax, _ = aggregate.YearBounds(records)
	for _, f := range []struct {
		field model.Field
		dst   *[]string
	}{
		{model.FieldType, &opts.Types},
		{model.FieldGender, &opts.Genders},
		{model.FieldNOC, &opts.Countries},
		{model.FieldMedal, &opts.Medals},
		{model.FieldDisciplineGrouped, &opts.DisciplineGroups},
		{model.FieldDiscipline, &opts.Disciplines},
	} {
		values, err := aggregate.Distinct(records, f.field)
		if err != nil {
			return FilterOptions{}, finish(view, 0, err)
		}
		*f.dst = values
	}
	for _, m := range aggregate.TallyMetrics {
		opts.SortMetrics = append(opts.SortMetrics, m.String())
	}
	return opts, finish(view, len(records), nil)
}
