package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.DataPath, convey.ShouldEqual, "jjoo.csv")
			convey.So(cfg.CoordsPath, convey.ShouldEqual, "noc_coordinates.csv")
			convey.So(cfg.DefaultTopN, convey.ShouldEqual, 15)
			convey.So(cfg.MaxTopN, convey.ShouldEqual, 50)
			convey.So(cfg.TopDisciplines, convey.ShouldEqual, 20)
			convey.So(cfg.ShutdownTimeout, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.DelimiterRune(), convey.ShouldEqual, ',')
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs violating one constraint each", t, func() {
		cases := map[string]func(*config.Config){
			"addr must not be empty":           func(c *config.Config) { c.Addr = "" },
			"data_path must not be empty":      func(c *config.Config) { c.DataPath = "" },
			"coords_path must not be empty":    func(c *config.Config) { c.CoordsPath = "" },
			"delimiter must be a single":       func(c *config.Config) { c.Delimiter = ";;" },
			"default_top_n must be positive":   func(c *config.Config) { c.DefaultTopN = 0 },
			"max_top_n must not be below":      func(c *config.Config) { c.MaxTopN = 5 },
			"top_disciplines must be positive": func(c *config.Config) { c.TopDisciplines = 0 },
			"shutdown_timeout must be positive": func(c *config.Config) {
				c.ShutdownTimeout = 0
			},
		}

		for msg, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, msg)
		}
	})
}
