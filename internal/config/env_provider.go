package config

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// EnvProvider provides configuration from environment variables.
type EnvProvider struct {
	prefix   string
	priority int
}

// NewEnvProvider creates a new environment provider.
func NewEnvProvider(prefix string, priority int) *EnvProvider {
	return &EnvProvider{
		prefix:   prefix,
		priority: priority,
	}
}

// Name returns the provider name.
func (p *EnvProvider) Name() string {
	return "env:" + p.prefix
}

// Priority returns the provider priority.
func (p *EnvProvider) Priority() int {
	return p.priority
}

// Load loads configuration from the environment.
func (p *EnvProvider) Load(ctx context.Context) (*Config, error) {
	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	config := &Config{
		Log:      LogConfig{},
		Generate: GenerateConfig{},
	}

	// Load log configuration
	p.loadStringFromEnv("LOG_LEVEL", &config.Log.Level)
	p.loadStringFromEnv("LOG_FORMAT", &config.Log.Format)
	p.loadStringFromEnv("LOG_OUTPUT", &config.Log.Output)

	// Load generate configuration
	p.loadStringFromEnv("GENERATE_PRESET", &config.Generate.Preset)
	p.loadStringFromEnv("GENERATE_INCLUDE", &config.Generate.Include)
	p.loadStringFromEnv("GENERATE_EXCLUDE", &config.Generate.Exclude)
	p.loadStringFromEnv("GENERATE_MAX_FILE_SIZE", &config.Generate.MaxFileSize)
	p.loadStringFromEnv("GENERATE_FORMAT", &config.Generate.Format)
	p.loadBoolFromEnv("GENERATE_MINIFY", &config.Generate.Minify)
	p.loadStringFromEnv("GENERATE_OUTPUT", &config.Generate.Output)
	p.loadIntFromEnv("GENERATE_WORKERS", &config.Generate.Workers)
	p.loadBoolFromEnv("GENERATE_VERBOSE", &config.Generate.Verbose)
	p.loadBoolFromEnv("GENERATE_NO_COMMON_EXCLUDES", &config.Generate.NoCommonExcludes)
	p.loadBoolFromEnv("GENERATE_NO_DETECT_ENCODING", &config.Generate.NoDetectEncoding)
	p.loadBoolFromEnv("GENERATE_NO_PROGRESS", &config.Generate.NoProgress)

	return config, nil
}

// loadStringFromEnv loads a string from the environment.
func (p *EnvProvider) loadStringFromEnv(key string, target *string) {
	if value := os.Getenv(p.prefix + key); value != "" {
		*target = value
	}
}

// loadIntFromEnv loads an int from the environment.
func (p *EnvProvider) loadIntFromEnv(key string, target *int) {
	if value := os.Getenv(p.prefix + key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

// loadBoolFromEnv loads a bool from the environment.
func (p *EnvProvider) loadBoolFromEnv(key string, target *bool) {
	if value := os.Getenv(p.prefix + key); value != "" {
		lower := strings.ToLower(value)
		*target = lower == "true" || value == "1" || lower == "yes" || lower == "on"
	}
}
