package config

import (
	"fmt"
	"os"

	"github.com/flywheel-sh/flywheel/pkg/pool"
	"github.com/flywheel-sh/flywheel/pkg/types"
	"gopkg.in/yaml.v3"
)

// ConfigurationError reports a config value that failed validation, such as
// an unrecognized scheduling mode.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: field %q value %q: %s", e.Field, e.Value, e.Reason)
}

// Config holds every scheduler-core tunable.
type Config struct {
	SpeculationIntervalMS int                  `yaml:"speculationIntervalMs"`
	StarvationTimeoutMS   int                  `yaml:"starvationTimeoutMs"`
	CPUsPerTask           int                  `yaml:"cpusPerTask"`
	SchedulingMode        types.SchedulingMode `yaml:"schedulingMode"`
	MaxTaskFailures       int                  `yaml:"maxTaskFailures"`
	SpeculationEnabled    bool                 `yaml:"speculationEnabled"`
}

// Default returns the configuration the scheduler core runs with when no
// file is supplied.
func Default() Config {
	return Config{
		SpeculationIntervalMS: 100,
		StarvationTimeoutMS:   15000,
		CPUsPerTask:           1,
		SchedulingMode:        types.ModeFIFO,
		MaxTaskFailures:       4,
		SpeculationEnabled:    false,
	}
}

// Load reads and validates a YAML config file, starting from Default() and
// overlaying whatever fields the file sets.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its accepted range or enumeration.
func (c Config) Validate() error {
	if !pool.ValidMode(c.SchedulingMode) {
		return &ConfigurationError{
			Field:  "schedulingMode",
			Value:  string(c.SchedulingMode),
			Reason: "must be one of FIFO, FAIR, CPU, NONE",
		}
	}
	if c.CPUsPerTask <= 0 {
		return &ConfigurationError{Field: "cpusPerTask", Value: fmt.Sprint(c.CPUsPerTask), Reason: "must be positive"}
	}
	if c.MaxTaskFailures <= 0 {
		return &ConfigurationError{Field: "maxTaskFailures", Value: fmt.Sprint(c.MaxTaskFailures), Reason: "must be positive"}
	}
	if c.SpeculationIntervalMS <= 0 {
		return &ConfigurationError{Field: "speculationIntervalMs", Value: fmt.Sprint(c.SpeculationIntervalMS), Reason: "must be positive"}
	}
	if c.StarvationTimeoutMS <= 0 {
		return &ConfigurationError{Field: "starvationTimeoutMs", Value: fmt.Sprint(c.StarvationTimeoutMS), Reason: "must be positive"}
	}
	return nil
}
