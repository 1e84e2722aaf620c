package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level equa.yaml configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	History HistoryConfig `yaml:"history"`
}

// SolverConfig overrides the numeric solver defaults. Zero values mean
// "use the default".
type SolverConfig struct {
	// Tolerance is the convergence tolerance for Newton-Raphson and
	// bisection (default 1e-6).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// MaxIterations caps a single Newton-Raphson run (default 100).
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// ScanStart/ScanEnd/ScanStep define the bisection-scan interval
	// (defaults -10, 10, 0.1).
	ScanStart float64 `yaml:"scan_start,omitempty"`
	ScanEnd   float64 `yaml:"scan_end,omitempty"`
	ScanStep  float64 `yaml:"scan_step,omitempty"`
}

// HistoryConfig controls the session history store.
type HistoryConfig struct {
	// Disabled turns off history recording entirely.
	Disabled bool `yaml:"disabled,omitempty"`

	// Path is the SQLite database file (default "equa_history.db" in the
	// working directory).
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no equa.yaml exists.
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Tolerance:     SolveTolerance,
			MaxIterations: MaxIterations,
			ScanStart:     ScanStart,
			ScanEnd:       ScanEnd,
			ScanStep:      ScanStep,
		},
		History: HistoryConfig{
			Path: "equa_history.db",
		},
	}
}

// Load reads a config file and fills unset fields with defaults. A
// missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if loaded.Solver.Tolerance > 0 {
		cfg.Solver.Tolerance = loaded.Solver.Tolerance
	}
	if loaded.Solver.MaxIterations > 0 {
		cfg.Solver.MaxIterations = loaded.Solver.MaxIterations
	}
	if loaded.Solver.ScanStep > 0 {
		cfg.Solver.ScanStep = loaded.Solver.ScanStep
	}
	if loaded.Solver.ScanStart != 0 || loaded.Solver.ScanEnd != 0 {
		if loaded.Solver.ScanStart >= loaded.Solver.ScanEnd {
			return nil, fmt.Errorf("parse %s: scan_start must be below scan_end", path)
		}
		cfg.Solver.ScanStart = loaded.Solver.ScanStart
		cfg.Solver.ScanEnd = loaded.Solver.ScanEnd
	}
	cfg.History.Disabled = loaded.History.Disabled
	if loaded.History.Path != "" {
		cfg.History.Path = loaded.History.Path
	}

	return cfg, nil
}
