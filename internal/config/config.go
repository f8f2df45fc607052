// Package config loads the .pegast/config.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDir     = ".pegast"
	DefaultPath    = DefaultDir + "/config.yaml"
	DefaultHistory = DefaultDir + "/history.db"
)

type Config struct {
	Log     LogConfig     `yaml:"log"`
	History HistoryConfig `yaml:"history"`
	Metrics MetricsConfig `yaml:"metrics"`
	Output  OutputConfig  `yaml:"output"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// On reports whether runs should be recorded. History is on unless disabled.
func (h HistoryConfig) On() bool {
	return h.Enabled == nil || *h.Enabled
}

type MetricsConfig struct {
	// Textfile, when set, receives the Prometheus text exposition after each
	// command.
	Textfile string `yaml:"textfile"`
}

type OutputConfig struct {
	// Format is tree, json or yaml.
	Format string `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func ApplyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = DefaultHistory
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "tree"
	}
}

func Validate(cfg *Config) error {
	var errs []error
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", cfg.Log.Level))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", cfg.Log.Format))
	}
	if err := ValidateFormat(cfg.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	return errors.Join(errs...)
}

// ValidateFormat checks an output format name.
func ValidateFormat(format string) error {
	switch format {
	case "tree", "json", "yaml":
		return nil
	}
	return fmt.Errorf("unknown format %q, want tree, json or yaml", format)
}

// Write stores cfg at path as YAML.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
