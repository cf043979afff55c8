// Package preset supplies per-ecosystem default include/exclude pattern
// bundles and marker-based project type detection.
package preset

import (
	"errors"
	"fmt"
	"sort"
)

// FallbackName is the preset used when detection finds no known ecosystem.
// It carries no language-specific rules; only the global binary-extension
// exclusion applies.
const FallbackName = "generic"

// AutoName selects marker-based detection instead of a fixed preset.
const AutoName = "auto"

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named bundle of default filter patterns and a language tag.
// Presets are static data, looked up by name and never mutated.
type Preset struct {
	// Name identifies the preset.
	Name string

	// Language is the tag minification rules are keyed by. It matches
	// Name for all built-in presets.
	Language string

	// IncludePatterns are the default include globs for the ecosystem.
	IncludePatterns []string

	// ExcludePatterns are the default exclude globs for the ecosystem.
	ExcludePatterns []string
}

var presets = map[string]Preset{
	"python": {
		Name:     "python",
		Language: "python",
		IncludePatterns: []string{
			"*.py", "requirements*.txt", "pyproject.toml", "setup.py", "*.pyx", "*.pyi",
		},
		ExcludePatterns: []string{
			"*.pyc", "*.pyo", "*.pyd", "*.egg-info/*", "venv/*", ".venv/*", "__pycache__/*",
		},
	},
	"javascript": {
		Name:     "javascript",
		Language: "javascript",
		IncludePatterns: []string{
			"*.js", "*.jsx", "*.ts", "*.tsx", "*.mjs", "*.cjs",
			"package.json", "tsconfig.json", "*.vue", "*.svelte",
			"*.html", "*.css", "*.scss", "*.less",
		},
		ExcludePatterns: []string{
			"*.log", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "*.map",
		},
	},
	"java": {
		Name:     "java",
		Language: "java",
		IncludePatterns: []string{
			"*.java", "*.xml", "*.properties", "pom.xml", "build.gradle*", "*.kt",
		},
		ExcludePatterns: []string{"*.class", "*.jar", "target/*", "build/*"},
	},
	"csharp": {
		Name:            "csharp",
		Language:        "csharp",
		IncludePatterns: []string{"*.cs", "*.csproj", "*.sln", "*.xaml", "*.config", "*.resx"},
		ExcludePatterns: []string{"bin/*", "obj/*", "*.dll", "*.exe"},
	},
	"ruby": {
		Name:            "ruby",
		Language:        "ruby",
		IncludePatterns: []string{"*.rb", "*.erb", "*.rake", "Gemfile", "Rakefile", "*.ru"},
		ExcludePatterns: []string{"Gemfile.lock", "vendor/*"},
	},
	"go": {
		Name:            "go",
		Language:        "go",
		IncludePatterns: []string{"*.go", "go.mod", "go.sum", "*.proto"},
		ExcludePatterns: []string{"vendor/*"},
	},
	"rust": {
		Name:            "rust",
		Language:        "rust",
		IncludePatterns: []string{"*.rs", "Cargo.toml", "Cargo.lock"},
		ExcludePatterns: []string{"target/*"},
	},
	"php": {
		Name:            "php",
		Language:        "php",
		IncludePatterns: []string{"*.php", "composer.json", "*.blade.php"},
		ExcludePatterns: []string{"vendor/*", "composer.lock"},
	},
	"cpp": {
		Name:     "cpp",
		Language: "cpp",
		IncludePatterns: []string{
			"*.cpp", "*.cc", "*.cxx", "*.h", "*.hpp", "*.hxx", "CMakeLists.txt", "*.cmake",
		},
		ExcludePatterns: []string{"*.o", "*.obj", "build/*", "cmake-build-*/*"},
	},
	"swift": {
		Name:            "swift",
		Language:        "swift",
		IncludePatterns: []string{"*.swift", "Package.swift", "*.xcodeproj/*", "*.xcworkspace/*"},
		ExcludePatterns: []string{"*.xcuserdata/*", "build/*", "DerivedData/*"},
	},
	FallbackName: {
		Name:     FallbackName,
		Language: FallbackName,
	},
}

// Lookup returns the preset registered under name. Unknown names are an
// error, never a silent fallback.
func Lookup(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Fallback returns the minimal preset applied when no ecosystem is detected.
func Fallback() Preset {
	return presets[FallbackName]
}

// Names returns all registered preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
