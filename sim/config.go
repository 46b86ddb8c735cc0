package sim

import (
	"fmt"
	"time"
)

// Defaults for one store day: 30 clock units of opening hours in 10-unit ticks.
const (
	DefaultDuration     int64 = 30
	DefaultTickSize     int64 = 10
	DefaultMinBatch           = 1
	DefaultMaxBatch           = 4
	DefaultPace               = 5 * time.Second
	DefaultClosingDelay       = 5 * time.Second
)

// StoreConfig groups the parameters of a single store run.
type StoreConfig struct {
	Name     string // cosmetic label, usually a day of the week
	Duration int64  // run length in clock units (must be > 0)
	TickSize int64  // clock units per tick (must be > 0)
}

// RunConfig groups everything the driver needs to run one or more days.
// It is loadable from YAML; fields left zero in a file keep their defaults.
type RunConfig struct {
	Days         []string      `yaml:"days"`
	Duration     int64         `yaml:"duration"`
	TickSize     int64         `yaml:"tick_size"`
	MinBatch     int           `yaml:"min_batch"`
	MaxBatch     int           `yaml:"max_batch"`
	Pace         time.Duration `yaml:"pace"`          // wall-clock delay between ticks
	ClosingDelay time.Duration `yaml:"closing_delay"` // wall-clock delay between announcement and evacuation
	Seed         int64         `yaml:"seed"`          // 0 = unseeded
}

// DefaultRunConfig returns a single Friday run with default pacing.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Days:         []string{"friday"},
		Duration:     DefaultDuration,
		TickSize:     DefaultTickSize,
		MinBatch:     DefaultMinBatch,
		MaxBatch:     DefaultMaxBatch,
		Pace:         DefaultPace,
		ClosingDelay: DefaultClosingDelay,
	}
}

// StoreConfig returns the per-store parameters for the named day.
func (c RunConfig) StoreConfig(day string) StoreConfig {
	return StoreConfig{Name: day, Duration: c.Duration, TickSize: c.TickSize}
}

// Validate checks that the run can be executed. Pace and closing delay may be
// zero (no pacing).
func (c RunConfig) Validate() error {
	if len(c.Days) == 0 {
		return fmt.Errorf("at least one day must be configured")
	}
	for i, d := range c.Days {
		if d == "" {
			return fmt.Errorf("day %d has an empty name", i)
		}
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %d", c.Duration)
	}
	if c.TickSize <= 0 {
		return fmt.Errorf("tick_size must be positive, got %d", c.TickSize)
	}
	if c.MinBatch < 0 {
		return fmt.Errorf("min_batch must be non-negative, got %d", c.MinBatch)
	}
	if c.MaxBatch < c.MinBatch {
		return fmt.Errorf("max_batch (%d) must be >= min_batch (%d)", c.MaxBatch, c.MinBatch)
	}
	if c.Pace < 0 {
		return fmt.Errorf("pace must be non-negative, got %s", c.Pace)
	}
	if c.ClosingDelay < 0 {
		return fmt.Errorf("closing_delay must be non-negative, got %s", c.ClosingDelay)
	}
	return nil
}
