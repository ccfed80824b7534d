// ============================================================================
// rspm - Script Package Metadata
// ============================================================================
//
// Package:     config
// Description: TOML/YAML configuration with defaults, env overrides and
//              validation
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/msto63/rspm/pkg/core/logging"
)

// Environment variables recognized by LoadFromEnv and ApplyEnv
const (
	EnvConfig       = "RSPM_CONFIG"
	EnvLogLevel     = "RSPM_LOG_LEVEL"
	EnvLogFormat    = "RSPM_LOG_FORMAT"
	EnvWorkers      = "RSPM_WORKERS"
	EnvOutputFormat = "RSPM_OUTPUT_FORMAT"
	EnvNoColor      = "RSPM_NO_COLOR"
)

const minBufferSize = 128

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Scan    ScanConfig    `toml:"scan" yaml:"scan"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds script parser settings
type ParserConfig struct {
	BufferSize    int `toml:"buffer_size" yaml:"buffer_size"`
	SnippetLength int `toml:"snippet_length" yaml:"snippet_length"`
}

// ScanConfig controls which files are parsed and how many at once
type ScanConfig struct {
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Workers    int      `toml:"workers" yaml:"workers"`
	Exclude    []string `toml:"exclude" yaml:"exclude"` // base name globs
}

// OutputConfig holds report settings
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // text, json or yaml
	Color  string `toml:"color" yaml:"color"`   // auto, always or never
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Defaults fill missing values and environment overrides are applied last.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv loads the file named by RSPM_CONFIG or the first file found in
// the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := env.Str(EnvConfig); path != "" {
		return Load(path)
	}

	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	cfg := Default()
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// DefaultPaths lists the locations LoadFromEnv searches, in order
func DefaultPaths() []string {
	paths := []string{"./rspm.toml", "./rspm.yaml", "./rspm.yml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rspm", "config.toml"))
	}
	return paths
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Parser.BufferSize == 0 {
		c.Parser.BufferSize = 512
	}
	if c.Parser.SnippetLength == 0 {
		c.Parser.SnippetLength = 32
	}

	if len(c.Scan.Extensions) == 0 {
		c.Scan.Extensions = []string{".rsc"}
	}
	if c.Scan.Workers == 0 {
		c.Scan.Workers = runtime.NumCPU()
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}

	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
}

// ApplyEnv overrides values from RSPM_* environment variables
func (c *Config) ApplyEnv() {
	c.General.LogLevel = env.Str(EnvLogLevel, c.General.LogLevel)
	c.General.LogFormat = env.Str(EnvLogFormat, c.General.LogFormat)
	c.Scan.Workers = env.Int(EnvWorkers, c.Scan.Workers)
	c.Output.Format = env.Str(EnvOutputFormat, c.Output.Format)
	if env.Bool(EnvNoColor) {
		c.Output.Color = "never"
	}
}

// Validate checks all values and reports every problem found
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.General.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("general.log_level: %w", err))
	}
	if _, err := logging.ParseFormat(c.General.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("general.log_format: %w", err))
	}

	if c.Parser.BufferSize < minBufferSize {
		errs = append(errs, fmt.Errorf("parser.buffer_size: must be at least %d, got %d", minBufferSize, c.Parser.BufferSize))
	}
	if c.Parser.SnippetLength < 1 {
		errs = append(errs, fmt.Errorf("parser.snippet_length: must be positive, got %d", c.Parser.SnippetLength))
	}

	for _, ext := range c.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("scan.extensions: %q must start with a dot", ext))
		}
	}
	if c.Scan.Workers < 1 {
		errs = append(errs, fmt.Errorf("scan.workers: must be positive, got %d", c.Scan.Workers))
	}
	for _, pattern := range c.Scan.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("scan.exclude: %q: %w", pattern, err))
		}
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("output.color: unknown mode %q", c.Output.Color))
	}

	if c.Watch.Debounce.Duration < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: must not be negative"))
	}

	return errors.Join(errs...)
}

// LoggerConfig converts the general section into a logger configuration
func (c *Config) LoggerConfig(name string, verbose bool) logging.LoggerConfig {
	return logging.LoggerConfig{
		Name:    name,
		Level:   c.General.LogLevel,
		Format:  c.General.LogFormat,
		Verbose: verbose,
	}
}
