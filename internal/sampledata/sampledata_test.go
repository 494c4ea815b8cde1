package sampledata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/adapters/http/api"
	"github.com/okian/podium/internal/adapters/repository"
	service "github.com/okian/podium/internal/app"
	"github.com/okian/podium/internal/domain/aggregate"
	"github.com/okian/podium/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	Convey("Given the sample generator", t, func() {
		ctx := context.Background()

		Convey("When generating twice with the same seed", func() {
			a, errA := Generate(ctx, 300, 42)
			b, errB := Generate(ctx, 300, 42)
			c, errC := Generate(ctx, 300, 43)

			Convey("Then the records should be identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(errC, ShouldBeNil)
				So(a, ShouldHaveLength, 300)
				So(a, ShouldResemble, b)
				So(a[0].Name, ShouldNotEqual, c[0].Name)
			})

			Convey("Then athletes should appear several times", func() {
				ov := aggregate.Summarize(a)
				So(ov.Athletes, ShouldEqual, 100)
				So(ov.Rows, ShouldEqual, 300)
			})
		})

		Convey("When asking for no rows", func() {
			_, err := Generate(ctx, 0, 1)

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestWriteAndLoad(t *testing.T) {
	Convey("Given sample files written to a temp dir", t, func() {
		ctx := context.Background()
		cfg := &Config{OutDir: t.TempDir(), Rows: 600, Seed: 7}
		res, err := Write(ctx, cfg)
		So(err, ShouldBeNil)

		Convey("When the record store loads them", func() {
			ds, err := repository.NewCSVStore().Load(ctx, res.MainPath, res.CoordsPath)

			Convey("Then the counts should round-trip", func() {
				So(err, ShouldBeNil)
				ov := aggregate.Summarize(ds.Records())
				So(ov.Rows, ShouldEqual, res.Rows)
				So(ov.Athletes, ShouldEqual, res.Athletes)
				So(ov.Countries, ShouldEqual, res.Countries)

				medals := 0
				for _, tally := range aggregate.MedalTally(ds.Records()) {
					medals += tally.TotalMedals
				}
				So(medals, ShouldEqual, res.Medals)
			})

			Convey("Then the unusable coordinate rows should be dropped", func() {
				So(ds.Stats.DroppedCoordinates, ShouldEqual, 1)
				So(ds.Stats.DuplicateCoordinates, ShouldEqual, 1)
				So(ds.Coordinates(), ShouldHaveLength, len(countries)-1)
				So(ds.Coordinates()[0].Country, ShouldEqual, "United States")
			})
		})
	})
}

func TestVerify(t *testing.T) {
	Convey("Given a service started on generated files", t, func() {
		ctx := context.Background()
		cfg := &Config{OutDir: t.TempDir(), Rows: 600, Seed: 11, Workers: 3, Timeout: 5 * time.Second}
		res, err := Write(ctx, cfg)
		So(err, ShouldBeNil)

		svc := service.New(
			service.WithLogger(logger.Nop()),
			service.WithDataPaths(res.MainPath, res.CoordsPath),
		)
		So(svc.Start(ctx), ShouldBeNil)
		mux := http.NewServeMux()
		api.NewServer(svc, svc).Register(ctx, mux)
		srv := httptest.NewServer(mux)
		defer srv.Close()
		cfg.BaseURL = srv.URL

		Convey("When verifying with the generated result", func() {
			stats, err := Verify(ctx, cfg, res)

			Convey("Then every probe should pass", func() {
				So(err, ShouldBeNil)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Succeeded, ShouldEqual, stats.Probes)
			})
		})

		Convey("When the expectation is wrong", func() {
			wrong := res
			wrong.Rows++
			_, err := Verify(ctx, cfg, wrong)

			Convey("Then a mismatch should be reported", func() {
				So(errors.Is(err, ErrMismatch), ShouldBeTrue)
			})
		})

		Convey("When running the whole tool", func() {
			So(Run(ctx, cfg), ShouldBeNil)
		})
	})

	Convey("Given no service at the URL", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		cfg := &Config{BaseURL: srv.URL, Timeout: time.Second}

		Convey("Then the health check should fail", func() {
			_, err := Verify(context.Background(), cfg, Result{})
			So(err, ShouldNotBeNil)
		})
	})
}
