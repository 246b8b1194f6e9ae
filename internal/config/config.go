// Package config holds the server configuration, optionally loaded from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration is a time.Duration written as a string ("5m", "30s") in TOML files.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config of the Frondster server.
type Config struct {
	// Addr to listen on. Empty means an automatically chosen port on localhost.
	Addr string `toml:"addr"`

	// WebDir is served under /web/: it holds the compiled app.wasm and the css.
	WebDir string `toml:"web_dir"`

	Name        string `toml:"name"`
	Description string `toml:"description"`

	// IdleTimeout after which a game with no connected clients is dropped.
	IdleTimeout Duration `toml:"idle_timeout"`

	// SweepInterval between checks for idle games.
	SweepInterval Duration `toml:"sweep_interval"`

	// WriteTimeout for each websocket message sent to a client.
	WriteTimeout Duration `toml:"write_timeout"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:          "",
		WebDir:        "web",
		Name:          "Frondster",
		Description:   "A Set card-matching puzzle",
		IdleTimeout:   Duration{30 * time.Minute},
		SweepInterval: Duration{time.Minute},
		WriteTimeout:  Duration{2 * time.Second},
	}
}

// Load reads the TOML file at path over the defaults.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
	}
	return cfg, cfg.Validate()
}

// Validate checks the values are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if c.IdleTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("idle_timeout must be positive, got %s", c.IdleTimeout))
	}
	if c.SweepInterval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval))
	}
	if c.WriteTimeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("write_timeout must be positive, got %s", c.WriteTimeout))
	}
	return errors.Join(errs...)
}
