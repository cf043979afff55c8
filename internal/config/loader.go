package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ctxgen/internal/logger"
)

// LoaderOptions configure the configuration loader.
type LoaderOptions struct {
	// Validator for configuration validation.
	Validator Validator
	// Merger for custom merging logic.
	Merger Merger
	// Timeout for provider operations.
	Timeout time.Duration
}

// Loader manages configuration loading from multiple providers.
type Loader struct {
	providers []Provider
	options   LoaderOptions
	mu        sync.RWMutex
}

// Default timeout for provider operations.
const defaultTimeout = 3 * time.Second

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "CTXGEN_"

// NewLoader creates a new configuration loader.
func NewLoader(opts ...LoaderOption) *Loader {
	options := LoaderOptions{
		Validator: &defaultValidator{},
		Merger:    &defaultMerger{},
		Timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{
		providers: make([]Provider, 0),
		options:   options,
	}
}

// LoaderOption is a functional option for configuring the loader.
type LoaderOption func(*LoaderOptions)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validator = v
	}
}

// WithMerger sets a custom merger.
func WithMerger(m Merger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Merger = m
	}
}

// WithTimeout sets the operation timeout.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Timeout = timeout
	}
}

// AddProvider adds a configuration provider.
func (l *Loader) AddProvider(provider Provider) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Insert in priority order (higher priority first)
	inserted := false
	for i, p := range l.providers {
		if provider.Priority() > p.Priority() {
			l.providers = append(l.providers[:i], append([]Provider{provider}, l.providers[i:]...)...)
			inserted = true
			break
		}
	}
	if !inserted {
		l.providers = append(l.providers, provider)
	}
}

// Load loads configuration from all providers.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.options.Timeout)
		defer cancel()
	}

	l.mu.RLock()
	providers := make([]Provider, len(l.providers))
	copy(providers, l.providers)
	l.mu.RUnlock()

	config := DefaultConfig()
	var errs []error

	// Load from providers in reverse priority order for merging
	for i := len(providers) - 1; i >= 0; i-- {
		provider := providers[i]
		providerConfig, err := provider.Load(ctx)
		if err != nil {
			logger.Error("Failed to load from provider",
				"provider", provider.Name(),
				"error", err)
			errs = append(errs, fmt.Errorf("provider %s: %w", provider.Name(), err))
			continue
		}

		if providerConfig != nil {
			config = l.options.Merger.Merge(config, providerConfig)
		}
	}

	// Validate the final configuration
	if err := l.options.Validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if len(errs) > 0 {
		return config, fmt.Errorf("some providers failed to load: %v", errs)
	}

	return config, nil
}

// NewProjectLoader creates a loader for the project's .ctxgen directory and
// the environment. Missing config files are not an error; the file providers
// return an empty layer for them.
func NewProjectLoader(configDir string) *Loader {
	loader := NewLoader()

	loader.AddProvider(NewFileProvider(filepath.Join(configDir, "config.yaml"), 10))
	loader.AddProvider(NewFileProvider(filepath.Join(configDir, "config.toml"), 20))
	loader.AddProvider(NewFileProvider(filepath.Join(configDir, "config.json"), 30))
	loader.AddProvider(NewEnvProvider(EnvPrefix, 40))

	return loader
}

// NewFileLoader creates a loader for an explicitly named configuration file
// plus the environment.
func NewFileLoader(path string) *Loader {
	loader := NewLoader()

	loader.AddProvider(NewFileProvider(path, 30))
	loader.AddProvider(NewEnvProvider(EnvPrefix, 40))

	return loader
}

// Load loads the configuration for the current working directory's project:
// the .ctxgen config files plus the environment.
func Load(ctx context.Context) (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working directory: %w", err)
	}

	workDir := filepath.Join(projectRootFrom(cwd), WorkDirName)
	return NewProjectLoader(workDir).Load(ctx)
}
