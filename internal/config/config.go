// Package config provides a streamlined, extensible configuration management system.
// It supports multiple configuration sources with priority-based merging and validation.
//
// Configuration is read from the project's .ctxgen directory (TOML, JSON, or
// YAML) and from CTXGEN_-prefixed environment variables, merged by provider
// priority, validated, and finally resolved against the selected preset into
// an immutable [Resolved] that the pipeline consumes.
//
// The package offers sensible defaults but allows customization through
// interfaces for providers, validators, and mergers.
package config

import (
	"context"
	"runtime"
)

// Config represents the application configuration structure.
type Config struct {
	// Log holds the logging configuration.
	Log LogConfig `toml:"log" yaml:"log" json:"log"`

	// Generate holds the 'generate' command configuration.
	Generate GenerateConfig `toml:"generate" yaml:"generate" json:"generate"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level sets the logging level (e.g., "debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level" json:"level"`

	// Format sets the logging format (e.g., "text", "json", "pretty", "discard").
	Format string `toml:"format" yaml:"format" json:"format"`

	// Output sets the logging output (e.g., "stdout", "stderr", "null", or file path).
	Output string `toml:"output" yaml:"output" json:"output"`
}

// GenerateConfig holds configuration for the 'generate' command.
type GenerateConfig struct {
	// Preset selects the ecosystem preset by name, or "auto" to detect one
	// from marker files at the project root.
	Preset string `toml:"preset" yaml:"preset" json:"preset"`

	// Include holds glob patterns for files to include, added to the
	// preset's own include set. This is a comma-separated list of patterns.
	Include string `toml:"include" yaml:"include" json:"include"`

	// Exclude holds glob patterns for files and directories to exclude,
	// added to the preset's own exclude set. Comma-separated.
	Exclude string `toml:"exclude" yaml:"exclude" json:"exclude"`

	// MaxFileSize sets the per-file size cap (e.g., "1MiB", "500KB").
	// "0" disables the cap.
	MaxFileSize string `toml:"max_file_size" yaml:"max_file_size" json:"max_file_size"`

	// Format sets the report format ("text", "markdown", or "json").
	Format string `toml:"format" yaml:"format" json:"format"`

	// Minify strips comments and blank lines from collected content.
	Minify bool `toml:"minify" yaml:"minify" json:"minify"`

	// Output sets the report destination. A bare file name lands in
	// .ctxgen/generated/; "-" writes to stdout.
	Output string `toml:"output" yaml:"output" json:"output"`

	// Workers sets the number of concurrent workers for file loading.
	// Default is the number of CPU cores.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`

	// Verbose enables verbose output.
	Verbose bool `toml:"verbose" yaml:"verbose" json:"verbose"`

	// NoCommonExcludes disables the shared exclude set (hidden entries,
	// build output, dependency caches).
	NoCommonExcludes bool `toml:"no_common_excludes" yaml:"no_common_excludes" json:"no_common_excludes"`

	// NoDetectEncoding disables statistical encoding detection; non-UTF-8
	// files fall straight through to the Latin-1 decode.
	NoDetectEncoding bool `toml:"no_detect_encoding" yaml:"no_detect_encoding" json:"no_detect_encoding"`

	// NoProgress disables the progress indicator.
	NoProgress bool `toml:"no_progress" yaml:"no_progress" json:"no_progress"`
}

// Provider defines the interface for configuration providers.
type Provider interface {
	// Name returns the provider name for identification.
	Name() string

	// Priority returns the provider priority (higher numbers = higher priority).
	Priority() int

	// Load loads configuration from the provider.
	Load(ctx context.Context) (*Config, error)
}

// Validator defines the interface for configuration validation.
type Validator interface {
	Validate(config *Config) error
}

// Merger defines the interface for custom configuration merging.
type Merger interface {
	Merge(base, override *Config) *Config
}

// defaultGenerateConfig returns a GenerateConfig instance with default settings.
func defaultGenerateConfig() GenerateConfig {
	return GenerateConfig{
		Preset:      "auto",
		MaxFileSize: "1MiB",
		Format:      "text",
		Workers:     runtime.NumCPU(),
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "pretty",
			Output: "stderr",
		},
		Generate: defaultGenerateConfig(),
	}
}
