// SPDX-License-Identifier: MIT
// Package config loads the run configuration of the lvmatch command.
//
// Sources, later wins: built-in defaults, the YAML file, LVMATCH_*
// environment variables, then command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvmatch/montecarlo"
	"github.com/katalvlaran/lvmatch/score"
)

// ErrInvalid marks a configuration value out of range or unknown.
var ErrInvalid = errors.New("config: invalid value")

// Method selects the solving strategy.
type Method string

const (
	// DeferredAcceptance runs the Monte-Carlo deferred acceptance search.
	DeferredAcceptance Method = "deferred_acceptance"
	// WeightedAssignment runs the one-shot optimal assignment.
	WeightedAssignment Method = "weighted_assignment"
)

// ParseMethod accepts the canonical names and the legacy "smp" and
// "hungarian".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(DeferredAcceptance), "smp", "da":
		return DeferredAcceptance, nil
	case string(WeightedAssignment), "hungarian", "assignment":
		return WeightedAssignment, nil
	default:
		return "", fmt.Errorf("%w: method %q", ErrInvalid, s)
	}
}

// Config is the YAML document.
type Config struct {
	Method  string      `yaml:"method"`
	Scorer  string      `yaml:"scorer"`
	Warper  string      `yaml:"warper"`
	Boost   float64     `yaml:"boost"`
	Weight  float64     `yaml:"weight"`
	Trials  int         `yaml:"trials"`
	Seed    int64       `yaml:"seed"`
	Workers int         `yaml:"workers"`
	Store   StoreConfig `yaml:"store"`
	Log     LogConfig   `yaml:"log"`
}

// StoreConfig locates the run database. An empty path disables saving.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig sets the CLI log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	mc := montecarlo.DefaultOptions()

	return &Config{
		Method:  string(WeightedAssignment),
		Scorer:  mc.Score.Base.String(),
		Warper:  mc.Score.Warp.String(),
		Boost:   mc.Score.Boost,
		Weight:  mc.Weight,
		Trials:  mc.Trials,
		Seed:    mc.Seed,
		Workers: mc.Workers,
		Log:     LogConfig{Level: "warn"},
	}
}

// Load is Read followed by Validate.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read reads path over the defaults and applies the environment without
// validating, so later overrides (command-line flags) can still fix a field.
// An empty path skips the file.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if _, err := ParseMethod(c.Method); err != nil {
		return err
	}
	if _, err := c.ScoreParams(); err != nil {
		return err
	}
	if err := score.ValidateWeight(c.Weight); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Trials < 1 {
		return fmt.Errorf("%w: trials=%d (must be >= 1)", ErrInvalid, c.Trials)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers=%d (must be >= 1)", ErrInvalid, c.Workers)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// ParsedMethod returns the validated Method.
func (c *Config) ParsedMethod() Method {
	m, _ := ParseMethod(c.Method)

	return m
}

// ScoreParams converts the scorer, warper and boost fields.
func (c *Config) ScoreParams() (score.Params, error) {
	base, err := score.ParseBase(c.Scorer)
	if err != nil {
		return score.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	warp, err := score.ParseWarp(c.Warper)
	if err != nil {
		return score.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	p := score.Params{Base: base, Warp: warp, Boost: c.Boost}
	if err = p.Validate(); err != nil {
		return score.Params{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return p, nil
}

// MonteCarloOptions builds controller options; Logger and OnTrial are left
// to the caller.
func (c *Config) MonteCarloOptions() (montecarlo.Options, error) {
	p, err := c.ScoreParams()
	if err != nil {
		return montecarlo.Options{}, err
	}
	opts := montecarlo.DefaultOptions()
	opts.Trials = c.Trials
	opts.Weight = c.Weight
	opts.Score = p
	opts.Seed = c.Seed
	opts.Workers = c.Workers

	return opts, nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}

	return lvl, nil
}

func (c *Config) applyEnvironment() error {
	if v := os.Getenv("LVMATCH_METHOD"); v != "" {
		c.Method = v
	}
	if v := os.Getenv("LVMATCH_TRIALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: LVMATCH_TRIALS=%q", ErrInvalid, v)
		}
		c.Trials = n
	}
	if v := os.Getenv("LVMATCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: LVMATCH_WORKERS=%q", ErrInvalid, v)
		}
		c.Workers = n
	}
	if v := os.Getenv("LVMATCH_WEIGHT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) {
			return fmt.Errorf("%w: LVMATCH_WEIGHT=%q", ErrInvalid, v)
		}
		c.Weight = f
	}
	if v := os.Getenv("LVMATCH_DB"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LVMATCH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}

	return nil
}
