package config_test

import (
	"errors"
	"testing"

	"github.com/okian/medaltips/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.AthletesPath, convey.ShouldEqual, "data/athletes.csv")
			convey.So(cfg.StateDir, convey.ShouldEqual, "state")
			convey.So(cfg.Players, convey.ShouldResemble, []string{"Johan", "Göran", "Jesper", "Peter", "Magnus", "Tony"})
			convey.So(cfg.AdminPassword, convey.ShouldEqual, "admin")
			convey.So(cfg.Tag().String(), convey.ShouldEqual, "sv")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the default roster is a fresh copy each time", func() {
			cfg.Players[0] = "changed"
			convey.So(config.New().Players[0], convey.ShouldEqual, "Johan")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with invalid fields", t, func() {
		cases := map[string]func(c *config.Config){
			"addr must not be empty":          func(c *config.Config) { c.Addr = " " },
			"athletes_path must not be empty": func(c *config.Config) { c.AthletesPath = "" },
			"state_dir must not be empty":     func(c *config.Config) { c.StateDir = "" },
			"players must not be empty":       func(c *config.Config) { c.Players = nil },
			"player names must not be blank":  func(c *config.Config) { c.Players = []string{"Johan", " "} },
			"duplicate player":                func(c *config.Config) { c.Players = []string{"Tony", "Tony"} },
			"locale":                          func(c *config.Config) { c.Locale = "not a tag!" },
		}

		for want, mutate := range cases {
			cfg := config.New()
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, want)
		}
	})
}
