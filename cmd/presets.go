package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"ctxgen/internal/display"
	"ctxgen/internal/preset"
)

// PresetsCommand returns the presets command configuration.
func PresetsCommand() *cli.Command {
	return &cli.Command{
		Name:    "presets",
		Aliases: []string{"preset"},
		Usage:   "Inspect the built-in filter presets",
		Description: `Presets bundle include and exclude patterns for common ecosystems, plus the
language tag minification is keyed by. The "auto" preset picks one by looking
for marker files (go.mod, package.json, Cargo.toml, ...) at the project root.`,
		EnableShellCompletion: true,
		Suggest:               true,
		DefaultCommand:        "list",

		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List the available presets",
				Action: func(ctx context.Context, c *cli.Command) error {
					return listPresets()
				},
				Suggest:               true,
				EnableShellCompletion: true,
			},
			{
				Name:      "show",
				Usage:     "Show one preset's language tag and pattern sets",
				ArgsUsage: "<name>",
				Action: func(ctx context.Context, c *cli.Command) error {
					return showPreset(c.Args().First())
				},
				Suggest:               true,
				EnableShellCompletion: true,
			},
		},
	}
}

// listPresets prints every registered preset to stdout.
func listPresets() error {
	all := make([]preset.Preset, 0, len(preset.Names()))
	for _, name := range preset.Names() {
		ps, err := preset.Lookup(name)
		if err != nil {
			return err
		}
		all = append(all, ps)
	}

	display.New(os.Stdout).ShowPresetList(all)
	return nil
}

// showPreset prints one preset's full definition to stdout.
func showPreset(name string) error {
	if name == "" {
		return errors.New("preset name is required")
	}

	ps, err := preset.Lookup(name)
	if err != nil {
		return err
	}

	display.New(os.Stdout).ShowPreset(ps)
	return nil
}
