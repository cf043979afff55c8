// Package cmd provides the command-line interface commands for the ctxgen context generator.
//
// This package implements the CLI commands using the urfave/cli framework, including
//   - generate: The main command for collecting project files into one context document
//   - presets: Commands for inspecting the built-in ecosystem presets
//
// Each command supports various flags for controlling preset selection, pattern
// filtering, output format, minification, and concurrency.
package cmd

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"ctxgen/internal/config"
	"ctxgen/internal/display"
	"ctxgen/internal/logger"
	"ctxgen/internal/pipeline"
)

// GenerateCommand returns the generate command configuration.
func GenerateCommand(cfg *config.Config, version string) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen", "g"},
		Usage:   "Collect project files into one consolidated context document",
		Description: `Scan the project for text files, filter them through the active preset and
user patterns, and serialize the survivors into a single document suitable
for AI context. If no paths are specified, the project root is scanned.`,
		ArgsUsage:             "[paths...]",
		EnableShellCompletion: true,
		Suggest:               true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "preset",
				Aliases: []string{"p"},
				Usage:   "Filter preset to apply, or \"auto\" to detect one from marker files",
				Value:   "auto",
			},
			&cli.StringFlag{
				Name:    "include",
				Aliases: []string{"i"},
				Usage:   "Comma-separated list of file patterns to include (glob patterns)",
				Value:   "",
			},
			&cli.StringFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Comma-separated list of file and directory patterns to exclude (glob patterns)",
				Value:   "",
			},
			&cli.StringFlag{
				Name:  "max-file-size",
				Usage: "Maximum file size to admit (e.g., 1MiB, 500KB) (0 = no limit)",
				Value: "1MiB",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, json",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "minify",
				Usage: "Strip comments and blank lines from collected content",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "List every decision without writing a document",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output destination; bare names land in .ctxgen/generated, \"-\" writes to stdout",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   runtime.NumCPU(),
				Usage:   "Number of worker goroutines for parallel file loading",
			},
			&cli.BoolFlag{
				Name:  "no-common-excludes",
				Usage: "Disable the shared exclude set (hidden entries, build output, dependency caches)",
			},
			&cli.BoolFlag{
				Name:  "no-detect-encoding",
				Usage: "Disable statistical encoding detection; non-UTF-8 files decode as Latin-1",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress indicator",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose output with per-file diagnostics",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return generateCmd(ctx, c, cfg, version)
		},
	}
}

// generateCmd is the action function for the generate command.
func generateCmd(ctx context.Context, c *cli.Command, cfg *config.Config, version string) error {
	// Override with CLI flags
	if c.IsSet("preset") {
		cfg.Generate.Preset = c.String("preset")
	}
	if c.IsSet("include") {
		cfg.Generate.Include = c.String("include")
	}
	if c.IsSet("exclude") {
		cfg.Generate.Exclude = c.String("exclude")
	}
	if c.IsSet("max-file-size") {
		cfg.Generate.MaxFileSize = c.String("max-file-size")
	}
	if c.IsSet("format") {
		cfg.Generate.Format = c.String("format")
	}
	if c.IsSet("minify") {
		cfg.Generate.Minify = c.Bool("minify")
	}
	if c.IsSet("output") {
		cfg.Generate.Output = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.Generate.Workers = c.Int("workers")
	}
	if c.IsSet("no-common-excludes") {
		cfg.Generate.NoCommonExcludes = c.Bool("no-common-excludes")
	}
	if c.IsSet("no-detect-encoding") {
		cfg.Generate.NoDetectEncoding = c.Bool("no-detect-encoding")
	}
	if c.IsSet("no-progress") {
		cfg.Generate.NoProgress = c.Bool("no-progress")
	}
	if c.IsSet("verbose") {
		cfg.Generate.Verbose = c.Bool("verbose")
	}

	// Verbose runs lower the log level to debug.
	if cfg.Generate.Verbose {
		logCfg, closer, err := logger.NewConfig("debug", cfg.Log.Format, cfg.Log.Output)
		if err == nil {
			if l, lerr := logger.New(logCfg); lerr == nil {
				_ = logger.SetDefault(l)
				if closer != nil {
					defer func() {
						_ = closer.Close()
					}()
				}
			}
		}
	}

	res, err := config.Resolve(cfg, c.Args().Slice(), c.Bool("dry-run"))
	if err != nil {
		return err
	}

	return generate(ctx, res, version)
}

// generate performs the main logic of building the context document.
func generate(ctx context.Context, res *config.Resolved, version string) error {
	out := display.New(os.Stderr)

	if res.Verbose {
		out.ShowFilters(res)
	}

	spin := startProgress(res)
	result, err := pipeline.Run(ctx, res, version)
	stopProgress(spin)
	if err != nil {
		return err
	}

	if res.DryRun {
		out.ShowDryRun(result.Candidates, result.Stats)
		return nil
	}

	out.ShowSummary(result.Stats, result.Report.Metadata.FileCount, res.OutputPath, res.Verbose)
	return nil
}

// startProgress starts the loading spinner when the progress capability is
// enabled, stderr is a terminal, and no verbose diagnostics would interleave
// with it. Returns nil when no spinner runs.
func startProgress(res *config.Resolved) *spinner.Spinner {
	if !res.Capabilities.Progress || res.Verbose || res.DryRun {
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " Collecting files..."
	s.Start()
	return s
}

func stopProgress(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}
