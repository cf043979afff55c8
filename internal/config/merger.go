package config

// defaultMerger provides deep merging of configurations.
type defaultMerger struct{}

// Merge merges two configurations.
// The base values are only overwritten if the override values are non-empty.
func (m *defaultMerger) Merge(base, override *Config) *Config {
	result := *base // Copy base

	// Merge log config
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.Format != "" {
		result.Log.Format = override.Log.Format
	}
	if override.Log.Output != "" {
		result.Log.Output = override.Log.Output
	}

	// Merge generate config
	if override.Generate.Preset != "" {
		result.Generate.Preset = override.Generate.Preset
	}
	if override.Generate.Include != "" {
		result.Generate.Include = override.Generate.Include
	}
	if override.Generate.Exclude != "" {
		result.Generate.Exclude = override.Generate.Exclude
	}
	if override.Generate.MaxFileSize != "" {
		result.Generate.MaxFileSize = override.Generate.MaxFileSize
	}
	if override.Generate.Format != "" {
		result.Generate.Format = override.Generate.Format
	}
	if override.Generate.Minify {
		result.Generate.Minify = override.Generate.Minify
	}
	if override.Generate.Output != "" {
		result.Generate.Output = override.Generate.Output
	}
	if override.Generate.Workers != 0 {
		result.Generate.Workers = override.Generate.Workers
	}
	if override.Generate.Verbose {
		result.Generate.Verbose = override.Generate.Verbose
	}
	if override.Generate.NoCommonExcludes {
		result.Generate.NoCommonExcludes = override.Generate.NoCommonExcludes
	}
	if override.Generate.NoDetectEncoding {
		result.Generate.NoDetectEncoding = override.Generate.NoDetectEncoding
	}
	if override.Generate.NoProgress {
		result.Generate.NoProgress = override.Generate.NoProgress
	}

	return &result
}
