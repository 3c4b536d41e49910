// Package config loads the CLI's optional YAML configuration and turns it
// into options for the library packages.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfst/builder"
	"github.com/katalvlaran/lvfst/core"
	"github.com/katalvlaran/lvfst/levenshtein"
	"github.com/katalvlaran/lvfst/regex"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("config: invalid value")

// Normalization forms accepted by Normalize.
var NormalForms = []string{"none", "nfc", "nfd", "nfkc", "nfkd"}

// Exporters accepted by Telemetry.
var Exporters = []string{"none", "stdout", "prometheus"}

// Config is the file format:
//
//	registry:
//	  table: 10000
//	  mru: 2
//	levenshtein:
//	  distance: 1
//	  state_limit: 10000
//	regex:
//	  size_limit: 10000
//	load:
//	  skip_checksum: false
//	normalize: none
//	telemetry: none
type Config struct {
	Registry    RegistryConfig    `yaml:"registry"`
	Levenshtein LevenshteinConfig `yaml:"levenshtein"`
	Regex       RegexConfig       `yaml:"regex"`
	Load        LoadConfig        `yaml:"load"`
	Normalize   string            `yaml:"normalize"`
	Telemetry   string            `yaml:"telemetry"`
}

// RegistryConfig sizes the builder's suffix registry; zero disables it.
type RegistryConfig struct {
	Table int `yaml:"table"`
	MRU   int `yaml:"mru"`
}

// LevenshteinConfig holds fuzzy search defaults.
type LevenshteinConfig struct {
	Distance   int `yaml:"distance"`
	StateLimit int `yaml:"state_limit"`
}

// RegexConfig holds regex search defaults.
type RegexConfig struct {
	SizeLimit int `yaml:"size_limit"`
}

// LoadConfig controls opening index files.
type LoadConfig struct {
	SkipChecksum bool `yaml:"skip_checksum"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Registry:    RegistryConfig{Table: builder.DefaultRegistryTable, MRU: builder.DefaultRegistryMRU},
		Levenshtein: LevenshteinConfig{Distance: 1, StateLimit: levenshtein.DefaultStateLimit},
		Regex:       RegexConfig{SizeLimit: regex.DefaultSizeLimit},
		Normalize:   "none",
		Telemetry:   "none",
	}
}

// Load reads path over the defaults and validates the result. An empty
// path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch {
	case c.Registry.Table < 0 || c.Registry.MRU < 0:
		return fmt.Errorf("%w: registry sizes must be non-negative", ErrInvalid)
	case c.Levenshtein.Distance < 0:
		return fmt.Errorf("%w: levenshtein.distance must be non-negative", ErrInvalid)
	case c.Levenshtein.StateLimit < 1:
		return fmt.Errorf("%w: levenshtein.state_limit must be positive", ErrInvalid)
	case c.Regex.SizeLimit < 1:
		return fmt.Errorf("%w: regex.size_limit must be positive", ErrInvalid)
	case !slices.Contains(NormalForms, c.Normalize):
		return fmt.Errorf("%w: normalize %q, want one of %v", ErrInvalid, c.Normalize, NormalForms)
	case !slices.Contains(Exporters, c.Telemetry):
		return fmt.Errorf("%w: telemetry %q, want one of %v", ErrInvalid, c.Telemetry, Exporters)
	}

	return nil
}

// BuilderOptions returns the builder options the configuration implies.
func (c Config) BuilderOptions() []builder.Option {
	return []builder.Option{builder.WithRegistry(c.Registry.Table, c.Registry.MRU)}
}

// LevenshteinOptions returns the levenshtein options the configuration implies.
func (c Config) LevenshteinOptions() []levenshtein.Option {
	return []levenshtein.Option{levenshtein.WithStateLimit(c.Levenshtein.StateLimit)}
}

// RegexOptions returns the regex options the configuration implies.
func (c Config) RegexOptions() []regex.Option {
	return []regex.Option{regex.WithSizeLimit(c.Regex.SizeLimit)}
}

// LoadOptions returns the load options the configuration implies.
func (c Config) LoadOptions() []core.LoadOption {
	if c.Load.SkipChecksum {
		return []core.LoadOption{core.WithSkipChecksum()}
	}
	return nil
}
