package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"ctxgen/internal/filter"
	"ctxgen/internal/preset"
)

// canonDir returns a symlink-free temporary directory.
func canonDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks() error = %v", err)
	}
	return dir
}

// TestResolveDefaults tests resolution of an untouched default configuration.
func TestResolveDefaults(t *testing.T) {
	dir := canonDir(t)

	r, err := resolveAt(DefaultConfig(), nil, false, dir)
	if err != nil {
		t.Fatalf("resolveAt() error = %v", err)
	}

	if r.ProjectRoot != dir {
		t.Errorf("ProjectRoot = %q, want %q", r.ProjectRoot, dir)
	}
	if want := []string{dir}; !reflect.DeepEqual(r.Roots, want) {
		t.Errorf("Roots = %v, want %v", r.Roots, want)
	}
	if r.PresetName != preset.FallbackName {
		t.Errorf("PresetName = %q, want %q", r.PresetName, preset.FallbackName)
	}
	if r.MaxFileSizeBytes != 1<<20 {
		t.Errorf("MaxFileSizeBytes = %d, want %d", r.MaxFileSizeBytes, 1<<20)
	}
	if r.Format != "text" {
		t.Errorf("Format = %q, want %q", r.Format, "text")
	}

	wantWorkDir := filepath.Join(dir, WorkDirName)
	if r.WorkDir != wantWorkDir {
		t.Errorf("WorkDir = %q, want %q", r.WorkDir, wantWorkDir)
	}
	wantOutput := filepath.Join(wantWorkDir, GeneratedDirName, DefaultOutputName)
	if r.OutputPath != wantOutput {
		t.Errorf("OutputPath = %q, want %q", r.OutputPath, wantOutput)
	}

	// Output lives inside the work directory, so it needs no extra
	// self-exclusion entry.
	if want := []string{wantWorkDir}; !reflect.DeepEqual(r.Filter.SelfExcludePaths, want) {
		t.Errorf("SelfExcludePaths = %v, want %v", r.Filter.SelfExcludePaths, want)
	}

	if !reflect.DeepEqual(r.Filter.PresetExcludes, filter.CommonExcludePatterns) {
		t.Errorf("PresetExcludes = %v, want common set %v", r.Filter.PresetExcludes, filter.CommonExcludePatterns)
	}

	if !r.Capabilities.EncodingDetection || !r.Capabilities.Progress {
		t.Errorf("Capabilities = %+v, want both enabled", r.Capabilities)
	}
}

// TestResolvePresetSelection tests named presets, detection, and failures.
func TestResolvePresetSelection(t *testing.T) {
	t.Run("named preset", func(t *testing.T) {
		dir := canonDir(t)
		cfg := DefaultConfig()
		cfg.Generate.Preset = "python"

		r, err := resolveAt(cfg, nil, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if r.PresetName != "python" {
			t.Errorf("PresetName = %q, want %q", r.PresetName, "python")
		}
		if !slices.Contains(r.Filter.PresetIncludes, "*.py") {
			t.Errorf("PresetIncludes = %v, want to contain *.py", r.Filter.PresetIncludes)
		}
	})

	t.Run("auto detection", func(t *testing.T) {
		dir := canonDir(t)
		if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module demo\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		r, err := resolveAt(DefaultConfig(), nil, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if r.PresetName != "go" {
			t.Errorf("PresetName = %q, want %q", r.PresetName, "go")
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		dir := canonDir(t)
		cfg := DefaultConfig()
		cfg.Generate.Preset = "fortran"

		_, err := resolveAt(cfg, nil, false, dir)
		if !errors.Is(err, preset.ErrUnknownPreset) {
			t.Errorf("resolveAt() error = %v, want %v", err, preset.ErrUnknownPreset)
		}
	})
}

// TestResolveRoots tests scan root validation and deduplication.
func TestResolveRoots(t *testing.T) {
	dir := canonDir(t)
	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(dir, "README.md")
	if err := os.WriteFile(file, []byte("# demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("directories and files", func(t *testing.T) {
		r, err := resolveAt(DefaultConfig(), []string{"src", "README.md"}, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if want := []string{sub, file}; !reflect.DeepEqual(r.Roots, want) {
			t.Errorf("Roots = %v, want %v", r.Roots, want)
		}
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		r, err := resolveAt(DefaultConfig(), []string{"src", "src", "./src"}, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if want := []string{sub}; !reflect.DeepEqual(r.Roots, want) {
			t.Errorf("Roots = %v, want %v", r.Roots, want)
		}
	})

	t.Run("nested roots collapse", func(t *testing.T) {
		nested := filepath.Join(sub, "pkg")
		if err := os.Mkdir(nested, 0o750); err != nil {
			t.Fatal(err)
		}
		r, err := resolveAt(DefaultConfig(), []string{"src/pkg", "src", "README.md"}, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if want := []string{sub, file}; !reflect.DeepEqual(r.Roots, want) {
			t.Errorf("Roots = %v, want %v", r.Roots, want)
		}
	})

	t.Run("missing root fails", func(t *testing.T) {
		if _, err := resolveAt(DefaultConfig(), []string{"gone"}, false, dir); err == nil {
			t.Error("resolveAt() error = nil, want error for missing root")
		}
	})
}

// TestResolveOutput tests destination handling.
func TestResolveOutput(t *testing.T) {
	dir := canonDir(t)
	workDir := filepath.Join(dir, WorkDirName)

	tests := []struct {
		name        string
		output      string
		want        string
		selfExclude bool
	}{
		{
			name:   "default",
			output: "",
			want:   filepath.Join(workDir, GeneratedDirName, DefaultOutputName),
		},
		{
			name:   "bare name lands in generated",
			output: "api.md",
			want:   filepath.Join(workDir, GeneratedDirName, "api.md"),
		},
		{
			name:        "relative path anchors at project root",
			output:      filepath.Join("out", "ctx.txt"),
			want:        filepath.Join(dir, "out", "ctx.txt"),
			selfExclude: true,
		},
		{
			name:   "stdout",
			output: StdoutPath,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Generate.Output = tt.output

			r, err := resolveAt(cfg, nil, false, dir)
			if err != nil {
				t.Fatalf("resolveAt() error = %v", err)
			}
			if r.OutputPath != tt.want {
				t.Errorf("OutputPath = %q, want %q", r.OutputPath, tt.want)
			}

			excluded := slices.Contains(r.Filter.SelfExcludePaths, tt.want)
			if tt.selfExclude && !excluded {
				t.Errorf("SelfExcludePaths = %v, want to contain %q", r.Filter.SelfExcludePaths, tt.want)
			}
			if !slices.Contains(r.Filter.SelfExcludePaths, workDir) {
				t.Errorf("SelfExcludePaths = %v, want to contain work dir %q", r.Filter.SelfExcludePaths, workDir)
			}
		})
	}
}

// TestResolveToggles tests pattern assembly and capability flags.
func TestResolveToggles(t *testing.T) {
	dir := canonDir(t)

	cfg := DefaultConfig()
	cfg.Generate.Preset = "python"
	cfg.Generate.Include = " *.toml , *.cfg ,"
	cfg.Generate.Exclude = "tests/*"
	cfg.Generate.NoCommonExcludes = true
	cfg.Generate.NoDetectEncoding = true
	cfg.Generate.NoProgress = true

	r, err := resolveAt(cfg, nil, false, dir)
	if err != nil {
		t.Fatalf("resolveAt() error = %v", err)
	}

	if want := []string{"*.toml", "*.cfg"}; !reflect.DeepEqual(r.Filter.UserIncludes, want) {
		t.Errorf("UserIncludes = %v, want %v", r.Filter.UserIncludes, want)
	}
	if want := []string{"tests/*"}; !reflect.DeepEqual(r.Filter.UserExcludes, want) {
		t.Errorf("UserExcludes = %v, want %v", r.Filter.UserExcludes, want)
	}

	// Without the common set the preset excludes stand alone.
	for _, p := range filter.CommonExcludePatterns {
		if slices.Contains(r.Filter.PresetExcludes, p) {
			t.Errorf("PresetExcludes = %v, contains common pattern %q", r.Filter.PresetExcludes, p)
		}
	}

	if r.Capabilities.EncodingDetection || r.Capabilities.Progress {
		t.Errorf("Capabilities = %+v, want both disabled", r.Capabilities)
	}
}

// TestResolveFormat tests format normalization and rejection.
func TestResolveFormat(t *testing.T) {
	dir := canonDir(t)

	t.Run("normalizes case", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.Format = "Markdown"

		r, err := resolveAt(cfg, nil, false, dir)
		if err != nil {
			t.Fatalf("resolveAt() error = %v", err)
		}
		if r.Format != "markdown" {
			t.Errorf("Format = %q, want %q", r.Format, "markdown")
		}
	})

	t.Run("unknown format fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Generate.Format = "xml"

		if _, err := resolveAt(cfg, nil, false, dir); err == nil {
			t.Error("resolveAt() error = nil, want error for unknown format")
		}
	})
}

// TestProjectRootFrom tests work-directory awareness.
func TestProjectRootFrom(t *testing.T) {
	tests := []struct {
		name string
		cwd  string
		want string
	}{
		{name: "plain directory", cwd: "/home/dev/project", want: "/home/dev/project"},
		{name: "inside work directory", cwd: "/home/dev/project/" + WorkDirName, want: "/home/dev/project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := projectRootFrom(tt.cwd); got != tt.want {
				t.Errorf("projectRootFrom(%q) = %q, want %q", tt.cwd, got, tt.want)
			}
		})
	}
}

// TestParseMaxFileSize tests size parsing.
func TestParseMaxFileSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "", want: 0},
		{in: "0", want: 0},
		{in: "1MiB", want: 1 << 20},
		{in: "500KB", want: 500_000},
		{in: "2kib", want: 2048},
		{in: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMaxFileSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMaxFileSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseMaxFileSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// TestParseCommaSeparated tests pattern list splitting.
func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "*.py", want: []string{"*.py"}},
		{name: "spaces and empties", in: " a , ,b,", want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseCommaSeparated(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCommaSeparated(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
