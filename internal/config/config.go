// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and PODIUM_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath points at the participation table.
	DataPath string `koanf:"data_path"`

	// CoordsPath points at the NOC coordinate table.
	CoordsPath string `koanf:"coords_path"`

	// Delimiter is the field separator of both tables.
	Delimiter string `koanf:"delimiter"`

	// DefaultTopN is used when a ranking request omits n.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the n parameter of ranking requests.
	MaxTopN int `koanf:"max_top_n"`

	// TopDisciplines is how many disciplines the age view keeps.
	TopDisciplines int `koanf:"top_disciplines"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataPath:        "jjoo.csv",
		CoordsPath:      "noc_coordinates.csv",
		Delimiter:       ",",
		DefaultTopN:     15,
		MaxTopN:         50,
		TopDisciplines:  20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Validate checks the invariants the service relies on.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.DataPath == "":
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	case c.CoordsPath == "":
		return fmt.Errorf("%w: coords_path must not be empty", ErrInvalidConfig)
	case len([]rune(c.Delimiter)) != 1:
		return fmt.Errorf("%w: delimiter must be a single character", ErrInvalidConfig)
	case c.DefaultTopN < 1:
		return fmt.Errorf("%w: default_top_n must be positive", ErrInvalidConfig)
	case c.MaxTopN < c.DefaultTopN:
		return fmt.Errorf("%w: max_top_n must not be below default_top_n", ErrInvalidConfig)
	case c.TopDisciplines < 1:
		return fmt.Errorf("%w: top_disciplines must be positive", ErrInvalidConfig)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}
