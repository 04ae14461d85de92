// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and MEDALTIPS_ env vars.
// - Validation errors wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// AthletesPath points at the read-only athlete feed (CSV).
	AthletesPath string `koanf:"athletes_path"`

	// StateDir holds the writable results.csv and picks.json.
	StateDir string `koanf:"state_dir"`

	// Players is the fixed, ordered roster of participants.
	Players []string `koanf:"players"`

	// AdminPassword gates result updates. Empty disables the check.
	AdminPassword string `koanf:"admin_password"`

	// Locale drives athlete and sport ordering (BCP 47 tag).
	Locale string `koanf:"locale"`
}

// DefaultPlayers is the roster used when none is configured.
func DefaultPlayers() []string {
	return []string{"Johan", "Göran", "Jesper", "Peter", "Magnus", "Tony"}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		AthletesPath:  "data/athletes.csv",
		StateDir:      "state",
		Players:       DefaultPlayers(),
		AdminPassword: "admin",
		Locale:        "sv",
	}
}
