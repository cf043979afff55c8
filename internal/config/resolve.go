package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"ctxgen/internal/filter"
	"ctxgen/internal/model"
	"ctxgen/internal/pathutil"
	"ctxgen/internal/preset"
)

// Project layout constants. The tool keeps everything it owns under the
// work directory so a single self-exclusion root covers script, config,
// and generated output.
const (
	// WorkDirName is the tool's own directory at the project root.
	WorkDirName = ".ctxgen"

	// GeneratedDirName is the output directory inside the work directory.
	GeneratedDirName = "generated"

	// DefaultOutputName is the report file name when none is configured.
	DefaultOutputName = "context.txt"

	// StdoutPath routes the report to standard output instead of a file.
	StdoutPath = "-"
)

// Resolved is the immutable product of folding defaults, preset data,
// configuration files, and flags. The pipeline reads only this and never
// re-consults any individual source.
type Resolved struct {
	// ProjectRoot anchors relative paths and report metadata.
	ProjectRoot string

	// Roots are the resolved paths to scan, in the order given.
	Roots []string

	// PresetName is the effective preset after auto-detection.
	PresetName string

	// Preset carries the effective preset's patterns and language tag.
	Preset preset.Preset

	// Filter holds the assembled pattern and size rules.
	Filter filter.Options

	// MaxFileSizeBytes mirrors Filter.MaxFileSizeBytes for display.
	MaxFileSizeBytes int64

	// Format is the report format: text, markdown, or json.
	Format string

	// Minify enables the comment-stripping pass.
	Minify bool

	// DryRun lists decisions without writing a report.
	DryRun bool

	// Verbose enables per-file diagnostics.
	Verbose bool

	// Workers bounds the loader's concurrency.
	Workers int

	// WorkDir is ProjectRoot/.ctxgen, always self-excluded.
	WorkDir string

	// OutputPath is the resolved report destination; empty means stdout.
	OutputPath string

	// Capabilities are the optional facilities enabled for this run.
	Capabilities model.Capabilities
}

// Resolve merges the loaded configuration with the command line's root
// arguments into a Resolved. Configuration errors (unknown preset, bad
// size, missing root) are reported here, before any traversal begins.
func Resolve(cfg *Config, args []string, dryRun bool) (*Resolved, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("cannot determine working directory: %w", err)
	}
	return resolveAt(cfg, args, dryRun, cwd)
}

func resolveAt(cfg *Config, args []string, dryRun bool, cwd string) (*Resolved, error) {
	projectRoot := projectRootFrom(cwd)
	workDir := filepath.Join(projectRoot, WorkDirName)

	roots, err := resolveRoots(projectRoot, args)
	if err != nil {
		return nil, err
	}

	ps, name, err := resolvePreset(cfg.Generate.Preset, projectRoot)
	if err != nil {
		return nil, err
	}

	maxBytes, err := parseMaxFileSize(cfg.Generate.MaxFileSize)
	if err != nil {
		return nil, err
	}

	format := strings.ToLower(cfg.Generate.Format)
	if !slices.Contains([]string{"text", "markdown", "json"}, format) {
		return nil, fmt.Errorf("invalid output format: %s", cfg.Generate.Format)
	}

	outputPath, err := resolveOutput(projectRoot, workDir, cfg.Generate.Output)
	if err != nil {
		return nil, err
	}

	selfExcludes := []string{workDir}
	if outputPath != "" && !pathutil.IsWithin(workDir, outputPath) {
		selfExcludes = append(selfExcludes, outputPath)
	}

	presetExcludes := slices.Clone(ps.ExcludePatterns)
	if !cfg.Generate.NoCommonExcludes {
		presetExcludes = append(presetExcludes, filter.CommonExcludePatterns...)
	}

	return &Resolved{
		ProjectRoot: projectRoot,
		Roots:       roots,
		PresetName:  name,
		Preset:      ps,
		Filter: filter.Options{
			SelfExcludePaths: selfExcludes,
			MaxFileSizeBytes: maxBytes,
			UserIncludes:     parseCommaSeparated(cfg.Generate.Include),
			UserExcludes:     parseCommaSeparated(cfg.Generate.Exclude),
			PresetIncludes:   slices.Clone(ps.IncludePatterns),
			PresetExcludes:   presetExcludes,
		},
		MaxFileSizeBytes: maxBytes,
		Format:           format,
		Minify:           cfg.Generate.Minify,
		DryRun:           dryRun,
		Verbose:          cfg.Generate.Verbose,
		Workers:          cfg.Generate.Workers,
		WorkDir:          workDir,
		OutputPath:       outputPath,
		Capabilities: model.Capabilities{
			EncodingDetection: !cfg.Generate.NoDetectEncoding,
			Progress:          !cfg.Generate.NoProgress,
		},
	}, nil
}

// projectRootFrom returns the project root for a working directory: the
// parent when invoked from inside the work directory, the directory itself
// otherwise.
func projectRootFrom(cwd string) string {
	if filepath.Base(cwd) == WorkDirName {
		return filepath.Dir(cwd)
	}
	return cwd
}

// resolveRoots validates the scan roots. Roots may be directories or single
// files; relative roots are anchored at the project root. A root that does
// not exist is an error, not a skip.
func resolveRoots(projectRoot string, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{projectRoot}
	}

	roots := make([]string, 0, len(args))
	seen := make(map[string]struct{}, len(args))

	for _, arg := range args {
		p := arg
		if !filepath.IsAbs(p) {
			p = filepath.Join(projectRoot, p)
		}

		resolved, err := pathutil.ValidateDirectory(p)
		if errors.Is(err, pathutil.ErrNotDirectory) {
			resolved, err = pathutil.ValidateRegularFile(p)
		}
		if err != nil {
			return nil, fmt.Errorf("root %q: %w", arg, err)
		}

		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		roots = append(roots, resolved)
	}

	return dropNestedRoots(roots), nil
}

// dropNestedRoots removes roots contained within another root, so a tree is
// never walked twice. Survivors keep their given order.
func dropNestedRoots(roots []string) []string {
	if len(roots) <= 1 {
		return roots
	}

	kept := make([]string, 0, len(roots))
	for i, r := range roots {
		nested := false
		for j, other := range roots {
			if i != j && pathutil.IsWithin(other, r) && !pathutil.IsWithin(r, other) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, r)
		}
	}
	return kept
}

// resolvePreset looks the preset up by name, running marker detection for
// "auto". Unknown names fail rather than silently falling back.
func resolvePreset(name, projectRoot string) (preset.Preset, string, error) {
	if name == preset.AutoName {
		ps := preset.DetectAuto(projectRoot)
		return ps, ps.Name, nil
	}

	ps, err := preset.Lookup(name)
	if err != nil {
		return preset.Preset{}, "", err
	}
	return ps, ps.Name, nil
}

// parseMaxFileSize parses a human-readable size ("1MiB", "500KB"). Zero
// disables the limit.
func parseMaxFileSize(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max file size %q: %w", s, err)
	}
	return int64(n), nil
}

// resolveOutput turns the configured output into an absolute destination.
// A bare file name lands in the generated directory; "-" selects stdout,
// returned as the empty string.
func resolveOutput(projectRoot, workDir, out string) (string, error) {
	if out == "" {
		out = DefaultOutputName
	}
	if out == StdoutPath {
		return "", nil
	}

	if filepath.Dir(out) == "." {
		out = filepath.Join(workDir, GeneratedDirName, out)
	} else if !filepath.IsAbs(out) {
		out = filepath.Join(projectRoot, out)
	}

	return pathutil.ResolveForWrite(out)
}

// parseCommaSeparated splits a comma-separated string and trims whitespace.
func parseCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
