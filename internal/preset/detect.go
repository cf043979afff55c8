package preset

import (
	"os"
	"path/filepath"
	"strings"
)

// ecosystemMarker ties a preset to the manifest files that identify its
// ecosystem. Detection walks the table in order, so the table order is the
// tie-break when a tree carries markers for several ecosystems.
type ecosystemMarker struct {
	preset     string
	indicators []string
}

var markers = []ecosystemMarker{
	{"python", []string{"requirements.txt", "requirements-dev.txt", "pyproject.toml", "setup.py", "Pipfile"}},
	{"javascript", []string{"package.json", "node_modules"}},
	{"java", []string{"pom.xml", "build.gradle", "build.gradle.kts"}},
	{"csharp", []string{"*.csproj", "*.sln"}},
	{"ruby", []string{"Gemfile", "Rakefile"}},
	{"go", []string{"go.mod"}},
	{"rust", []string{"Cargo.toml"}},
	{"php", []string{"composer.json"}},
	{"cpp", []string{"CMakeLists.txt", "Makefile"}},
	{"swift", []string{"Package.swift", "*.xcodeproj"}},
}

// DetectAuto picks a preset by inspecting root for ecosystem marker files.
// The first marker that matches wins; with no match the fallback preset is
// returned.
func DetectAuto(root string) Preset {
	for _, m := range markers {
		for _, indicator := range m.indicators {
			if matchIndicator(root, indicator) {
				return presets[m.preset]
			}
		}
	}
	return Fallback()
}

// matchIndicator reports whether the indicator names an existing entry
// directly under root. Indicators containing a wildcard are matched as
// globs against the root's immediate entries.
func matchIndicator(root, indicator string) bool {
	if strings.Contains(indicator, "*") {
		matches, err := filepath.Glob(filepath.Join(root, indicator))
		return err == nil && len(matches) > 0
	}
	_, err := os.Stat(filepath.Join(root, indicator))
	return err == nil
}
