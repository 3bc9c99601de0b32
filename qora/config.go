package qora

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/GabrielRStella/QORA/registry"
)

// DefaultAlpha is the confidence level used when a Config does not set one.
const DefaultAlpha = 0.05

// Config is the file-loadable construction surface for a Learner. It maps
// onto the persisted document's parameters envelope, plus the runtime-only
// knobs (verbosity, parallelism) that never affect learned state.
type Config struct {
	// Alpha is the confidence level for every Wilson success interval
	// (0.05 means 95% intervals). Must lie strictly inside (0, 1).
	Alpha float64 `yaml:"alpha"`
	// Verbose enables trace lines for predictor creation, promotion, and
	// reset events.
	Verbose bool `yaml:"verbose"`
	// Parallelism bounds how many predictors are updated or queried
	// concurrently per transition. Values <= 1 run fully sequentially,
	// which is the default and the only mode with a bit-identical output
	// guarantee across runs.
	Parallelism int `yaml:"parallelism"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{Alpha: DefaultAlpha, Parallelism: 1}
}

// LoadConfig reads a YAML document from r on top of DefaultConfig.
// Unknown fields are rejected; an empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("qora: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("%w: alpha %v not in (0, 1)", ErrInvalidConfig, c.Alpha)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism %d is negative", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// Options converts c into the runtime Options a Learner is constructed
// with, directing any verbose trace output to log.
func (c Config) Options(log io.Writer) Options {
	return Options{Verbose: c.Verbose, Log: log, Parallelism: c.Parallelism}
}

// NewFromConfig validates cfg and constructs a Learner over reg.
func NewFromConfig(reg *registry.Registry, cfg Config, log io.Writer) (*Learner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return New(reg, cfg.Alpha, cfg.Options(log)), nil
}
