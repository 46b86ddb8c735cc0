package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/inference-sim/store-sim/sim"
)

// LoadRunConfig parses a YAML run config on top of the defaults. Fields the
// file does not mention keep their defaults; fields it sets, including zero
// values, win. Uses strict field checking: typos must cause errors.
func LoadRunConfig(path string) (sim.RunConfig, error) {
	cfg := sim.DefaultRunConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return sim.DefaultRunConfig(), fmt.Errorf("parsing run config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveRunConfig builds the run config from defaults, the optional
// --config file and the flags the user set explicitly, in that order.
func resolveRunConfig(cmd *cobra.Command) (sim.RunConfig, error) {
	cfg := sim.DefaultRunConfig()
	if configPath != "" {
		fileCfg, err := LoadRunConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("days") {
		cfg.Days = days
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("tick") {
		cfg.TickSize = tickSize
	}
	if flags.Changed("min-batch") {
		cfg.MinBatch = minBatch
	}
	if flags.Changed("max-batch") {
		cfg.MaxBatch = maxBatch
	}
	if flags.Changed("pace") {
		cfg.Pace = pace
	}
	if flags.Changed("closing-delay") {
		cfg.ClosingDelay = closingDelay
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
