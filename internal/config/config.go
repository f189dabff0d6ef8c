// Package config loads the simulation settings from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/skirmish/internal/core/loadout"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/world"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Log       LogConfig            `yaml:"log"`
	World     WorldConfig          `yaml:"world"`
	Materials []materials.Material `yaml:"materials"`
	Ships     []loadout.ShipSpec   `yaml:"ships"`
	Pilot     PilotConfig          `yaml:"pilot"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type WorldConfig struct {
	// TickRate is the number of updates per second.
	TickRate int    `yaml:"tick_rate"`
	Seed     string `yaml:"seed"`
	// Duration stops the run after this much wall time; zero runs until signalled.
	Duration      time.Duration       `yaml:"duration"`
	ReportEvery   time.Duration       `yaml:"report_every"`
	TraceInterval float64             `yaml:"trace_interval"`
	Debris        world.DebrisOptions `yaml:"debris"`
}

// PilotConfig drives the scripted pilot of the headless runner.
type PilotConfig struct {
	Fire bool `yaml:"fire"`
	// Weave flips the rudder every period seconds; zero flies straight.
	Weave float64 `yaml:"weave"`
	Boost bool    `yaml:"boost"`
}

// Default mirrors the stock scene: one fighter, a debris field and a pilot
// that holds the trigger.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		World: WorldConfig{
			TickRate:      60,
			Seed:          "skirmish",
			ReportEvery:   5 * time.Second,
			TraceInterval: 1,
			Debris:        world.DefaultDebris(),
		},
		Ships: []loadout.ShipSpec{loadout.Fighter("player")},
		Pilot: PilotConfig{Fire: true, Weave: 2},
	}
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML over Default, so omitted sections keep their defaults,
// then validates the result.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.World.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.World.TickRate))
	}
	if c.World.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: negative duration", ErrInvalidConfig))
	}
	d := c.World.Debris
	if d.Min < 0 || d.Max < d.Min {
		errs = append(errs, fmt.Errorf("%w: debris count range [%d, %d]", ErrInvalidConfig, d.Min, d.Max))
	}
	if d.Max > 0 && (d.MinRadius <= 0 || d.MaxRadius < d.MinRadius) {
		errs = append(errs, fmt.Errorf("%w: debris radius range [%g, %g]", ErrInvalidConfig, d.MinRadius, d.MaxRadius))
	}
	if c.Pilot.Weave < 0 {
		errs = append(errs, fmt.Errorf("%w: negative weave period", ErrInvalidConfig))
	}

	for _, m := range c.Materials {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	names := make(map[string]struct{}, len(c.Ships))
	for _, s := range c.Ships {
		if _, dup := names[s.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate ship %q", ErrInvalidConfig, s.Name))
		}
		names[s.Name] = struct{}{}
		if err := s.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("ship %q: %w", s.Name, err))
		}
	}
	return errors.Join(errs...)
}

// TickInterval is the wall time between updates.
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.World.TickRate)
}

// MetricsInterval is the aggregation window for runtime metrics.
func (c *Config) MetricsInterval() time.Duration {
	if c.World.ReportEvery > 0 {
		return c.World.ReportEvery
	}
	return 10 * time.Second
}

// Registry builds a material registry holding the built-ins plus the
// configured materials.
func (c *Config) Registry() (*materials.Registry, error) {
	reg := materials.NewRegistry()
	for _, m := range c.Materials {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("register material %q: %w", m.Name, err)
		}
	}
	return reg, nil
}

// WorldOptions converts the world section.
func (c *Config) WorldOptions() world.Options {
	return world.Options{
		Seed:          c.World.Seed,
		Debris:        c.World.Debris,
		TraceInterval: c.World.TraceInterval,
	}
}
