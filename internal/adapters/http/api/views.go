package api

import (
	"context"
	"net/http"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/filter"
)

// ViewsHandler serves the dashboard views. Every view accepts the shared
// filter parameters.
type ViewsHandler struct {
	deps Dependencies
}

// NewViewsHandler creates a new views handler.
func NewViewsHandler(deps Dependencies) *ViewsHandler {
	return &ViewsHandler{deps: deps}
}

// viewResponse wraps view rows. Empty tells clients to show a "no data" state.
type viewResponse struct {
	View  string `json:"view"`
	Count int    `json:"count"`
	Empty bool   `json:"empty"`
	Data  any    `json:"data"`
}

// serveRows runs a view returning rows and writes the envelope.
func serveRows[T any](w http.ResponseWriter, r *http.Request, view string,
	fn func(ctx context.Context, p filter.Predicate) ([]T, error),
) {
	op := "api." + view
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	p, err := parsePredicate(r.URL.Query())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	rows, err := fn(r.Context(), p)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if rows == nil {
		rows = []T{}
	}
	writeJSON(w, http.StatusOK, viewResponse{View: view, Count: len(rows), Empty: len(rows) == 0, Data: rows})
}

// HandleOverview handles GET /api/v1/overview.
func (h *ViewsHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	const op = "api.overview"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	p, err := parsePredicate(r.URL.Query())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	out, err := h.deps.Overview(r.Context(), p)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, viewResponse{View: "overview", Count: out.Rows, Empty: out.Rows == 0, Data: out})
}

// HandleParticipation handles GET /api/v1/participation (year x gender rows).
func (h *ViewsHandler) HandleParticipation(w http.ResponseWriter, r *http.Request) {
	serveRows(w, r, "participation", h.deps.ParticipationByYear)
}

// HandleDisciplinesByYear handles GET /api/v1/disciplines/by-year.
func (h *ViewsHandler) HandleDisciplinesByYear(w http.ResponseWriter, r *http.Request) {
	serveRows(w, r, "disciplines_by_year", h.deps.DisciplinesByYear)
}

// HandleDisciplineTree handles GET /api/v1/disciplines/tree.
func (h *ViewsHandler) HandleDisciplineTree(w http.ResponseWriter, r *http.Request) {
	serveRows(w, r, "discipline_tree", h.deps.DisciplineTree)
}

// HandleAgeByDiscipline handles GET /api/v1/disciplines/age.
func (h *ViewsHandler) HandleAgeByDiscipline(w http.ResponseWriter, r *http.Request) {
	serveRows(w, r, "age_by_discipline", h.deps.AgeByDiscipline)
}

// HandleMap handles GET /api/v1/map.
func (h *ViewsHandler) HandleMap(w http.ResponseWriter, r *http.Request) {
	serveRows(w, r, "map", h.deps.MedalMap)
}

// HandleMedals handles GET /api/v1/medals?sort_by=Gold&n=10.
func (h *ViewsHandler) HandleMedals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	n, err := parseLimit(q)
	if err != nil {
		writeFailure(w, "api.medals", err)
		return
	}
	sortBy := q.Get("sort_by")
	serveRows(w, r, "medals", func(ctx context.Context, p filter.Predicate) ([]aggregate.Tally, error) {
		return h.deps.MedalsByCountry(ctx, p, sortBy, n)
	})
}

// HandleDistribution handles GET /api/v1/athletes/distribution?field=age&group_by=gender.
func (h *ViewsHandler) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field, groupBy := defaultString(q.Get("field"), "age"), q.Get("group_by")
	serveRows(w, r, "distribution", func(ctx context.Context, p filter.Predicate) ([]aggregate.Summary, error) {
		return h.deps.AthleteDistribution(ctx, p, field, groupBy)
	})
}

// HandleHeightWeight handles GET /api/v1/athletes/height-weight?color=medal.
func (h *ViewsHandler) HandleHeightWeight(w http.ResponseWriter, r *http.Request) {
	color := r.URL.Query().Get("color")
	serveRows(w, r, "height_weight", func(ctx context.Context, p filter.Predicate) ([]aggregate.Point, error) {
		return h.deps.HeightWeight(ctx, p, color)
	})
}

// HandleSummary handles GET /api/v1/summary?field=age&group_by=discipline.
func (h *ViewsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field, groupBy := defaultString(q.Get("field"), "age"), q.Get("group_by")
	serveRows(w, r, "summary", func(ctx context.Context, p filter.Predicate) ([]aggregate.MeanRow, error) {
		return h.deps.Summary(ctx, p, field, groupBy)
	})
}

// HandleAggregate handles GET /api/v1/aggregate?mode=distinct_count&group_by=year.
func (h *ViewsHandler) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	const op = "api.aggregate"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	q := r.URL.Query()
	spec, err := parseSpec(q)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	p, err := parsePredicate(q)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	res, err := h.deps.Aggregate(r.Context(), p, spec)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	n := len(res.Counts) + len(res.Means) + len(res.Tallies)
	writeJSON(w, http.StatusOK, viewResponse{View: "aggregate", Count: n, Empty: n == 0, Data: res})
}

// HandleOptions handles GET /api/v1/options.
func (h *ViewsHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	const op = "api.options"
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}
	opts, err := h.deps.FilterOptions(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
