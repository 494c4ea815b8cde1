package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/filter"
	"github.com/okian/podium/internal/domain/join"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func dataset() *repository.Dataset {
	records := []model.ParticipationRecord{
		{Year: 2000, Type: model.Summer, NOC: "USA", Gender: "Male", Name: "A", Age: model.Float(24), HeightCM: model.Float(185), WeightKG: model.Float(80), Medal: model.Gold, Discipline: "Athletics", DisciplineGrouped: "Athletics"},
		{Year: 2000, Type: model.Summer, NOC: "USA", Gender: "Female", Name: "B", Discipline: "Swimming", DisciplineGrouped: "Aquatics"},
		{Year: 2004, Type: model.Summer, NOC: "FRA", Gender: "Male", Name: "C", Age: model.Float(30), Medal: model.Silver, Discipline: "Fencing", DisciplineGrouped: "Fencing"},
		{Year: 2004, Type: model.Summer, NOC: "FRA", Gender: "Female", Name: "F", Age: model.Float(22), Medal: model.Gold, Discipline: "Fencing", DisciplineGrouped: "Fencing"},
	}
	coords := []model.CountryMetadata{
		{NOC: "USA", Country: "United States", Latitude: 38, Longitude: -97},
		{NOC: "FRA", Country: "France", Latitude: 46, Longitude: 2},
	}
	return repository.NewDataset(records, coords, time.Now())
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats, api.WithLogger(logger.Nop())).Register(context.Background(), mux)
	return mux
}

func startedService() *service.Service {
	svc := service.New(service.WithLogger(logger.Nop()), service.WithDataset(dataset()))
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

type envelope struct {
	View  string          `json:"view"`
	Count int             `json:"count"`
	Empty bool            `json:"empty"`
	Data  json.RawMessage `json:"data"`
}

func decode(w *httptest.ResponseRecorder) envelope {
	var env envelope
	So(json.Unmarshal(w.Body.Bytes(), &env), ShouldBeNil)
	return env
}

// failingDeps returns an internal error from Overview.
type failingDeps struct {
	*service.Service
}

func (failingDeps) Overview(context.Context, filter.Predicate) (aggregate.Overview, error) {
	return aggregate.Overview{}, errors.New("disk on fire")
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server over a loaded service", t, func() {
		svc := startedService()
		mux := newMux(svc, svc)

		Convey("When calling the health endpoint", func() {
			w := get(mux, "/healthz")

			Convey("Then it should report ok with a request id", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, `"ok"`)
				So(w.Header().Get(api.RequestIDHeader), ShouldNotBeEmpty)
			})
		})

		Convey("When the caller supplies a request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "0b7c5a8e-2f43-4d7e-9a56-3d1f0c2b9e11")
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be echoed back", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "0b7c5a8e-2f43-4d7e-9a56-3d1f0c2b9e11")
			})
		})

		Convey("When calling the stats endpoint", func() {
			w := get(mux, "/stats")

			Convey("Then it should return the service stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var stats map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["started"], ShouldEqual, true)
				So(stats["rows"], ShouldEqual, 4.0)
			})
		})

		Convey("When scraping metrics", func() {
			get(mux, "/api/v1/overview")
			w := get(mux, "/metrics")

			Convey("Then request metrics should be exposed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "podium_analytics_http_requests_total")
			})
		})

		Convey("When posting to a view", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/medals", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should be rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestViews(t *testing.T) {
	Convey("Given a registered API", t, func() {
		svc := startedService()
		mux := newMux(svc, svc)

		Convey("When requesting the overview for 2000", func() {
			w := get(mux, "/api/v1/overview?year_min=2000&year_max=2000")
			env := decode(w)
			var out aggregate.Overview
			So(json.Unmarshal(env.Data, &out), ShouldBeNil)

			Convey("Then only the 2000 rows should be counted", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(out, ShouldResemble, aggregate.Overview{Rows: 2, Athletes: 2, Countries: 1})
			})
		})

		Convey("When the filter matches nothing", func() {
			w := get(mux, "/api/v1/participation?noc=JPN")
			env := decode(w)

			Convey("Then an empty envelope should be returned", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(env.Empty, ShouldBeTrue)
				So(string(env.Data), ShouldEqual, "[]")
			})
		})

		Convey("When ranking medals by gold with n=1", func() {
			w := get(mux, "/api/v1/medals?sort_by=Gold&n=1")
			env := decode(w)
			var tallies []aggregate.Tally
			So(json.Unmarshal(env.Data, &tallies), ShouldBeNil)

			Convey("Then the first country in input order should win the tie", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(tallies, ShouldHaveLength, 1)
				So(tallies[0].NOC, ShouldEqual, "USA")
				So(tallies[0].Gold, ShouldEqual, 1)
			})
		})

		Convey("When filtering by several genders", func() {
			w := get(mux, "/api/v1/overview?gender=Male&gender=female")
			env := decode(w)

			Convey("Then both genders should be kept", func() {
				So(env.Count, ShouldEqual, 4)
			})
		})

		Convey("When requesting the medal map", func() {
			w := get(mux, "/api/v1/map?medal=Gold")
			env := decode(w)
			var points []join.GeoPoint
			So(json.Unmarshal(env.Data, &points), ShouldBeNil)

			Convey("Then joined points should carry coordinates", func() {
				So(points, ShouldHaveLength, 2)
				So(points[1].Country, ShouldEqual, "France")
				So(points[1].Latitude, ShouldEqual, 46.0)
			})
		})

		Convey("When requesting the age summary by discipline", func() {
			w := get(mux, "/api/v1/summary?field=age&group_by=discipline")
			env := decode(w)
			var rows []aggregate.MeanRow
			So(json.Unmarshal(env.Data, &rows), ShouldBeNil)

			Convey("Then null ages should be skipped", func() {
				So(rows, ShouldResemble, []aggregate.MeanRow{
					{Key: "Athletics", Mean: 24, N: 1},
					{Key: "Fencing", Mean: 26, N: 2},
				})
			})
		})

		Convey("When calling the remaining views", func() {
			for _, target := range []string{
				"/api/v1/options",
				"/api/v1/disciplines/by-year",
				"/api/v1/disciplines/tree",
				"/api/v1/disciplines/age",
				"/api/v1/athletes/distribution?field=age&group_by=gender",
				"/api/v1/athletes/height-weight?color=medal",
				"/api/v1/aggregate?mode=medal_tally",
				"/api/v1/aggregate?mode=distinct_count&group_by=year,gender",
			} {
				So(get(mux, target).Code, ShouldEqual, http.StatusOK)
			}
		})

		Convey("When parameters are malformed", func() {
			cases := map[string]string{
				"/api/v1/overview?year_min=abc":               "bad_request",
				"/api/v1/overview?year_min=2010&year_max=2000": "bad_request",
				"/api/v1/overview?medal=Platinum":             "bad_request",
				"/api/v1/medals?n=-1":                         "bad_request",
				"/api/v1/medals?sort_by=Height":               "invalid_field",
				"/api/v1/summary?field=team":                  "invalid_field",
				"/api/v1/aggregate":                           "bad_request",
				"/api/v1/aggregate?mode=median":               "invalid_spec",
			}

			Convey("Then each should be a 400 with a code", func() {
				for target, code := range cases {
					w := get(mux, target)
					So(w.Code, ShouldEqual, http.StatusBadRequest)
					So(w.Body.String(), ShouldContainSubstring, code)
				}
			})
		})
	})

	Convey("Given a service that has not loaded its data", t, func() {
		svc := service.New(service.WithLogger(logger.Nop()))
		mux := newMux(svc, svc)

		Convey("Then health and views should report unavailable", func() {
			So(get(mux, "/healthz").Code, ShouldEqual, http.StatusServiceUnavailable)
			So(get(mux, "/api/v1/medals").Code, ShouldEqual, http.StatusServiceUnavailable)
			So(get(mux, "/api/v1/options").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given a dependency failing internally", t, func() {
		svc := startedService()
		mux := newMux(failingDeps{svc}, svc)

		Convey("Then the view should answer 500", func() {
			w := get(mux, "/api/v1/overview")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "disk on fire")
		})
	})
}

func TestErrors(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("boom")

		Convey("Then kind and cause should both be matchable", func() {
			err := api.WrapKind("api.medals", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.medals: bad request: boom")
		})

		Convey("Then NewKind and Wrap should compose", func() {
			So(api.NewKind("op", api.ErrUnavailable).Error(), ShouldEqual, "op: dataset not loaded")
			So(api.Wrap("op", nil), ShouldBeNil)
			So(errors.Is(api.Wrap("op", cause), cause), ShouldBeTrue)
		})
	})
}
