package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
)

// defaultValidator provides comprehensive validation.
type defaultValidator struct{}

const (
	maxWorkers = 64
	minWorkers = 1
)

// Validate validates the configuration.
func (v *defaultValidator) Validate(config *Config) error {
	if err := v.validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := v.validateGenerateConfig(&config.Generate); err != nil {
		return fmt.Errorf("generate config validation failed: %w", err)
	}

	return nil
}

// validateLogConfig validates the log configuration.
func (v *defaultValidator) validateLogConfig(config *LogConfig) error {
	if config.Level == "" {
		return errors.New("log level is required")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of %v", config.Level, validLevels)
	}

	if config.Format != "" {
		validFormats := []string{"text", "json", "pretty", "discard"}
		if !contains(validFormats, config.Format) {
			return fmt.Errorf("invalid log format: %s, must be one of %v", config.Format, validFormats)
		}
	}

	return nil
}

// validateGenerateConfig validates the generate configuration.
func (v *defaultValidator) validateGenerateConfig(config *GenerateConfig) error {
	if config.Preset == "" {
		return errors.New("preset is required")
	}

	if config.Workers < minWorkers {
		return fmt.Errorf("too few workers: %d (min %d)", config.Workers, minWorkers)
	}
	if config.Workers > max(maxWorkers, runtime.NumCPU()) {
		return fmt.Errorf("too many workers: %d (max %d)", config.Workers, max(maxWorkers, runtime.NumCPU()))
	}

	if config.Format != "" {
		validFormats := []string{"text", "markdown", "json"}
		if !contains(validFormats, config.Format) {
			return fmt.Errorf("invalid output format: %s, must be one of %v", config.Format, validFormats)
		}
	}

	if config.MaxFileSize != "" {
		if _, err := humanize.ParseBytes(config.MaxFileSize); err != nil {
			return fmt.Errorf("invalid max file size %q: %w", config.MaxFileSize, err)
		}
	}

	return nil
}

// contains returns true if the given string is in the slice.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
