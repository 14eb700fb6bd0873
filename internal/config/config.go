// Package config loads planner settings from YAML.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"room-planner/internal/logging"
	"room-planner/internal/rrtstar"
)

const (
	DefaultStepSize = 0.5
	DefaultMaxIter  = 1000
	DefaultSeed     = 1
	DefaultAddr     = ":8080"

	// DefaultMaxIterLimit caps the max_iter a single request may ask for
	DefaultMaxIterLimit = 1_000_000
)

// Config is the root of the configuration file
type Config struct {
	Planner PlannerConfig  `json:"planner" yaml:"planner"`
	Log     logging.Config `json:"log" yaml:"log"`
	Server  ServerConfig   `json:"server" yaml:"server"`
}

// PlannerConfig holds the RRT* parameters
type PlannerConfig struct {
	StepSize      float64           `json:"step_size" yaml:"step_size"`
	MaxIter       int               `json:"max_iter" yaml:"max_iter"`
	Seed          int64             `json:"seed" yaml:"seed"`
	Steer         rrtstar.SteerMode `json:"steer" yaml:"steer"`
	PropagateCost bool              `json:"propagate_cost" yaml:"propagate_cost"`
	MaxAttempts   int               `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty"` // 0 = 100 per vertex, -1 = unlimited
	MaxIterLimit  int               `json:"max_iter_limit" yaml:"max_iter_limit"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Planner: PlannerConfig{
			StepSize:     DefaultStepSize,
			MaxIter:      DefaultMaxIter,
			Seed:         DefaultSeed,
			Steer:        rrtstar.SteerDefault,
			MaxIterLimit: DefaultMaxIterLimit,
		},
		Log:    logging.DefaultConfig(),
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Load decodes YAML on top of the defaults and validates the result
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the configuration from path
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to open config %q", path)
	}
	defer f.Close()

	cfg, err := Load(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	var err error
	if !(c.Planner.StepSize > 0) {
		err = multierr.Append(err, fmt.Errorf("planner.step_size must be positive, got %v", c.Planner.StepSize))
	}
	if c.Planner.MaxIter <= 0 {
		err = multierr.Append(err, fmt.Errorf("planner.max_iter must be positive, got %d", c.Planner.MaxIter))
	}
	if c.Planner.MaxIterLimit <= 0 {
		err = multierr.Append(err, fmt.Errorf("planner.max_iter_limit must be positive, got %d", c.Planner.MaxIterLimit))
	} else if c.Planner.MaxIter > c.Planner.MaxIterLimit {
		err = multierr.Append(err, fmt.Errorf("planner.max_iter %d exceeds planner.max_iter_limit %d", c.Planner.MaxIter, c.Planner.MaxIterLimit))
	}
	if c.Planner.MaxAttempts < rrtstar.UnlimitedAttempts {
		err = multierr.Append(err, fmt.Errorf("planner.max_attempts must be %d (unlimited) or more, got %d", rrtstar.UnlimitedAttempts, c.Planner.MaxAttempts))
	}
	switch c.Planner.Steer {
	case rrtstar.SteerDefault, rrtstar.SteerRandom:
	default:
		err = multierr.Append(err, fmt.Errorf("planner.steer must be %q or %q, got %q", rrtstar.SteerDefault, rrtstar.SteerRandom, c.Planner.Steer))
	}
	if _, levelErr := logging.ParseLevel(c.Log.Level); levelErr != nil {
		err = multierr.Append(err, levelErr)
	}
	switch c.Log.Encoding {
	case "", "console", "json":
	default:
		err = multierr.Append(err, fmt.Errorf("log.encoding must be console or json, got %q", c.Log.Encoding))
	}
	if c.Server.Addr == "" {
		err = multierr.Append(err, errors.New("server.addr must not be empty"))
	}
	return err
}
