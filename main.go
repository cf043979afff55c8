// Ctxgen is a CLI tool that collects a project's text files into one
// consolidated context document for AI consumption. It filters files through
// ecosystem presets, decodes them with an encoding fallback chain, and
// serializes them deterministically as text, markdown, or JSON.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"ctxgen/cmd"
	"ctxgen/internal/config"
	"ctxgen/internal/logger"
	"ctxgen/internal/pathutil"
)

const (
	version = "1.0.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closer io.Closer
	closeLogFile := func() {
		if closer != nil {
			_ = closer.Close()
		}
	}
	defer closeLogFile()

	// exit function to handle a graceful shutdown
	exit := func(status int) {
		cancel()
		closeLogFile()
		os.Exit(status)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		sig := <-c
		logger.InfoAttrs(ctx, "Received signal, shutting down", slog.String("signal", sig.String()))
		exit(1)
	}()

	appConfig, err := config.Load(ctx)
	if err != nil {
		logger.Error("failed to load the config", "error", err)
		exit(1)
	}

	app := &cli.Command{
		Name:    "ctxgen",
		Usage:   "Generate consolidated context documents from project files",
		Version: version,
		Description: `A preset-aware project context generator.

This tool scans a project tree for text files, filters them through ecosystem
presets and user patterns, and serializes the survivors into one document
suitable for AI context, with deterministic ordering and content digests.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set the log level (debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set the log format (text, json, pretty, discard)",
				Value: "pretty",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Set the log output (stdout, stderr, null, or file path)",
				Value: "stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a configuration file (TOML, YAML, or JSON)",
			},
		},
		Commands: []*cli.Command{
			cmd.GenerateCommand(appConfig, version),
			cmd.PresetsCommand(),
		},
		DefaultCommand:        "generate",
		Suggest:               true,
		EnableShellCompletion: true,
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			if command.IsSet("config") {
				configPath, err := pathutil.ValidateRegularFile(command.String("config"))
				if err != nil {
					return ctx, fmt.Errorf("failed to parse the config: %w", err)
				}

				customConfig, err := config.NewFileLoader(configPath).Load(ctx)
				if err != nil {
					return ctx, err
				}
				*appConfig = *customConfig
			}

			logCloser, newCtx, err := initialize(ctx, command, appConfig)
			closer = logCloser
			return newCtx, err
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Println()
		logger.Error("application error", "error", err)
		exit(1)
	}
}

// initialize sets up the logging system based on CLI flags and configuration.
func initialize(ctx context.Context, command *cli.Command, cfg *config.Config) (io.Closer, context.Context, error) {
	// Override with CLI flags
	if command.IsSet("log-level") {
		cfg.Log.Level = command.String("log-level")
	}
	if command.IsSet("log-format") {
		cfg.Log.Format = command.String("log-format")
	}
	if command.IsSet("log-output") {
		cfg.Log.Output = command.String("log-output")
	}

	logCfg, logCloser, err := logger.NewConfig(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		return nil, ctx, err
	}

	return logCloser, ctx, logger.InitDefault(logCfg)
}
