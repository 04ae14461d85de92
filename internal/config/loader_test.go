package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/medaltips/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MEDALTIPS_ADDR", ":8080")
			_ = os.Setenv("MEDALTIPS_STATE_DIR", "/var/lib/medaltips")
			_ = os.Setenv("MEDALTIPS_ADMIN_PASSWORD", "s3cret")
			_ = os.Setenv("MEDALTIPS_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StateDir, convey.ShouldEqual, "/var/lib/medaltips")
				convey.So(cfg.AdminPassword, convey.ShouldEqual, "s3cret")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.AthletesPath, convey.ShouldEqual, "data/athletes.csv")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
athletes_path: /srv/feed/athletes.csv
players:
  - Anna
  - Björn
locale: nb
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MEDALTIPS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.AthletesPath, convey.ShouldEqual, "/srv/feed/athletes.csv")
				convey.So(cfg.Players, convey.ShouldResemble, []string{"Anna", "Björn"})
				convey.So(cfg.Locale, convey.ShouldEqual, "nb")
				convey.So(cfg.StateDir, convey.ShouldEqual, "state")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
admin_password: from-file
state_dir: /tmp/from-file
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MEDALTIPS_CONFIG", tmpFile)
			_ = os.Setenv("MEDALTIPS_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.AdminPassword, convey.ShouldEqual, "from-file")
				convey.So(cfg.StateDir, convey.ShouldEqual, "/tmp/from-file")
				convey.So(cfg.Players, convey.ShouldResemble, config.DefaultPlayers())
			})
		})

		convey.Convey("When the admin password is explicitly empty", func() {
			tmpFile := createTempConfigFile(`admin_password: ""`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MEDALTIPS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then the gate is disabled rather than defaulted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.AdminPassword, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MEDALTIPS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MEDALTIPS_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MEDALTIPS_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the YAML roster repeats a player", func() {
			tmpFile := createTempConfigFile("players: [Tony, Tony]\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MEDALTIPS_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"MEDALTIPS_CONFIG",
		"MEDALTIPS_ADDR",
		"MEDALTIPS_STATE_DIR",
		"MEDALTIPS_ATHLETES_PATH",
		"MEDALTIPS_ADMIN_PASSWORD",
		"MEDALTIPS_LOG_LEVEL",
		"MEDALTIPS_LOG_FORMAT",
		"MEDALTIPS_LOCALE",
		"MEDALTIPS_PLAYERS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "medaltips-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
