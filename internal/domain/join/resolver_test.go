package join_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/internal/domain/join"
	"github.com/okian/podium/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var coords = []model.CountryMetadata{
	{NOC: "USA", Country: "United States", Latitude: 38.9, Longitude: -77.0},
	{NOC: "FRA", Country: "France", Latitude: 48.8, Longitude: 2.3},
}

func TestResolve(t *testing.T) {
	Convey("Given tallies with and without coordinates", t, func() {
		tallies := []aggregate.Tally{
			{NOC: "USA", TotalMedals: 3, Gold: 3, TotalAthletes: 4},
			{NOC: "ROT", TotalMedals: 1, Bronze: 1, TotalAthletes: 1},
			{NOC: "FRA", TotalMedals: 0, TotalAthletes: 2},
		}

		Convey("When left-joining", func() {
			out := join.Resolve(tallies, coords)

			Convey("Then every tally row is preserved in order", func() {
				So(out, ShouldHaveLength, 3)
				So(out[0].Country, ShouldEqual, "United States")
				So(out[0].HasCoords, ShouldBeTrue)
				So(out[1].NOC, ShouldEqual, "ROT")
				So(out[1].HasCoords, ShouldBeFalse)
				So(out[1].Latitude, ShouldEqual, 0.0)
				So(out[1].Longitude, ShouldEqual, 0.0)
			})
		})

		Convey("When coordinates are required", func() {
			out := join.Resolve(tallies, coords, join.WithRequireCoords())

			Convey("Then unmatched rows are dropped immediately", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].NOC, ShouldEqual, "USA")
				So(out[1].NOC, ShouldEqual, "FRA")
			})
		})

		Convey("When preparing map data", func() {
			out := join.ForMap(tallies, coords)

			Convey("Then zero-medal and unmatched rows are excluded", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].NOC, ShouldEqual, "USA")
				So(out[0].Gold, ShouldEqual, 3)
			})
		})
	})
}

func TestProperty_Resolve(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	genTallies := gen.SliceOf(gen.IntRange(0, 63)).Map(func(seeds []int) []aggregate.Tally {
		out := make([]aggregate.Tally, len(seeds))
		for i, s := range seeds {
			out[i] = aggregate.Tally{NOC: []string{"USA", "FRA", "KEN", "JAM"}[s%4], TotalMedals: s / 4}
		}
		return out
	})

	properties.Property("matched rows are never dropped and unmatched never get coordinates", prop.ForAll(
		func(tallies []aggregate.Tally) bool {
			out := join.Resolve(tallies, coords)
			if len(out) != len(tallies) {
				return false
			}
			for i, p := range out {
				if p.NOC != tallies[i].NOC {
					return false
				}
				matched := p.NOC == "USA" || p.NOC == "FRA"
				if p.HasCoords != matched {
					return false
				}
				if !matched && (p.Latitude != 0 || p.Longitude != 0 || p.Country != "") {
					return false
				}
			}
			return true
		},
		genTallies,
	))

	properties.Property("map rows all have coordinates and medals", prop.ForAll(
		func(tallies []aggregate.Tally) bool {
			want := 0
			for _, t := range tallies {
				if (t.NOC == "USA" || t.NOC == "FRA") && t.TotalMedals > 0 {
					want++
				}
			}
			out := join.ForMap(tallies, coords)
			if len(out) != want {
				return false
			}
			for _, p := range out {
				if !p.HasCoords || p.TotalMedals <= 0 {
					return false
				}
			}
			return true
		},
		genTallies,
	))

	properties.TestingRun(t)
}
