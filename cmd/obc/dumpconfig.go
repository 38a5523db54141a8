package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"obc/config"
	"obc/state"
)

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: cli.CommandHelpTemplate + `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Actual configuration is composition of default values and values from
configuration file. Use --default to see configuration embedded into the
program.
`,
	}
}

// configData returns YAML of either embedded defaults or cfg.
func configData(defaults bool, cfg *config.Config) (string, []byte, error) {
	if defaults {
		data, err := config.Prepare()
		return "default", data, err
	}
	data, err := config.Dump(cfg)
	return "actual", data, err
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, data, err := configData(cmd.Bool("default"), env.Cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().First()
	if len(fname) == 0 {
		env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		if _, err := cmd.Root().Writer.Write(data); err != nil {
			return fmt.Errorf("unable to write configuration: %w", err)
		}
		return nil
	}

	env.Log.Info("Outputing configuration", zap.String("state", kind), zap.String("file", fname))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return fmt.Errorf("unable to write configuration to '%s': %w", fname, err)
	}
	return nil
}
