// Package config provides unified configuration loading for contagion.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nvandessel/contagion/internal/constants"
	"github.com/nvandessel/contagion/internal/epidemic"
	"gopkg.in/yaml.v3"
)

// ContagionConfig contains all contagion configuration settings.
type ContagionConfig struct {
	// Simulation contains the epidemic run parameters.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig holds the scalar parameters of a run.
type SimulationConfig struct {
	// TransmissionProbability is the per-contact, per-day infection chance (p).
	// Range: 0.0 to 1.0
	TransmissionProbability float64 `json:"transmission_probability" yaml:"transmission_probability"`

	// Horizon is the final simulation day (tf).
	Horizon int `json:"horizon" yaml:"horizon"`

	// InfectiousDays is how long an agent stays infectious (ti).
	InfectiousDays int `json:"infectious_days" yaml:"infectious_days"`

	// ImmunityDays is how long a recovered agent stays immune (ta).
	ImmunityDays int `json:"immunity_days" yaml:"immunity_days"`

	// TestGroupSize is the size of the random test group (te_no).
	// Must be at least 1 and smaller than the population.
	TestGroupSize int `json:"test_group_size" yaml:"test_group_size"`

	// Seed fixes the random source for reproducible runs. Nil means a fresh
	// seed per run.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LoggingConfig configures contagion's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-day decision logging to DecisionDir/decisions.jsonl.
	// "trace" additionally logs every transmission draw.
	Level string `json:"level" yaml:"level"`

	// DecisionDir is the directory receiving decisions.jsonl. Defaults to
	// the current directory.
	DecisionDir string `json:"decision_dir,omitempty" yaml:"decision_dir,omitempty"`
}

// Default returns a ContagionConfig with the reference scenario defaults.
func Default() *ContagionConfig {
	return &ContagionConfig{
		Simulation: SimulationConfig{
			TransmissionProbability: constants.DefaultTransmissionProbability,
			Horizon:                 constants.DefaultHorizon,
			InfectiousDays:          constants.DefaultInfectiousDuration,
			ImmunityDays:            constants.DefaultImmunityDuration,
			TestGroupSize:           constants.DefaultTestGroupSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.contagion/config.yaml -> environment variables
func Load() (*ContagionConfig, error) {
	config := Default()

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, constants.ConfigDirName, constants.ConfigFileName)
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadPath loads configuration from path in place of the home config file,
// then applies environment overrides.
func LoadPath(path string) (*ContagionConfig, error) {
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys absent
// from the file keep their defaults.
func LoadFromFile(path string) (*ContagionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return config, nil
}

// Validate checks the parameters that do not depend on the population size.
// The test group bound against N is checked when a run starts.
func (c *ContagionConfig) Validate() error {
	s := c.Simulation
	if math.IsNaN(s.TransmissionProbability) || s.TransmissionProbability < 0 || s.TransmissionProbability > 1 {
		return fmt.Errorf("transmission_probability must be between 0 and 1, got %f", s.TransmissionProbability)
	}
	if s.Horizon < 0 {
		return fmt.Errorf("horizon must be non-negative, got %d", s.Horizon)
	}
	if s.InfectiousDays < 0 {
		return fmt.Errorf("infectious_days must be non-negative, got %d", s.InfectiousDays)
	}
	if s.ImmunityDays < 0 {
		return fmt.Errorf("immunity_days must be non-negative, got %d", s.ImmunityDays)
	}
	if s.TestGroupSize < 1 {
		return fmt.Errorf("test_group_size must be at least 1, got %d", s.TestGroupSize)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// Params converts the simulation settings into stepper parameters.
func (c *ContagionConfig) Params() epidemic.Params {
	return epidemic.Params{
		TransmissionProbability: c.Simulation.TransmissionProbability,
		Horizon:                 c.Simulation.Horizon,
		InfectiousDuration:      c.Simulation.InfectiousDays,
		ImmunityDuration:        c.Simulation.ImmunityDays,
		TestGroupSize:           c.Simulation.TestGroupSize,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
// Unlike unset variables, set but malformed values are reported.
func applyEnvOverrides(config *ContagionConfig) error {
	if v := os.Getenv("CONTAGION_P"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("CONTAGION_P: %w", err)
		}
		config.Simulation.TransmissionProbability = f
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"CONTAGION_TF", &config.Simulation.Horizon},
		{"CONTAGION_TI", &config.Simulation.InfectiousDays},
		{"CONTAGION_TA", &config.Simulation.ImmunityDays},
		{"CONTAGION_TE_NO", &config.Simulation.TestGroupSize},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}

	if v := os.Getenv("CONTAGION_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CONTAGION_SEED: %w", err)
		}
		config.Simulation.Seed = &seed
	}

	if v := os.Getenv("CONTAGION_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}
