package main

import (
	"fmt"
	"strings"

	cli "github.com/urfave/cli/v3"

	"obc/build"
	"obc/common"
)

func buildCommand() *cli.Command {
	return &cli.Command{
		Name:         "build",
		Usage:        "Assembles omnibus EPUB for requested scope",
		OnUsageError: usageErrorHandler,
		Action:       build.Run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "scope", Aliases: []string{"s"}, Value: common.ScopeEntireSeries.String(),
				Usage: "what to assemble `SCOPE` (" + strings.Join(common.ScopeNames(), ", ") + ")"},
			&cli.StringFlag{Name: "layout", Aliases: []string{"l"},
				Usage: "override configured output `LAYOUT` (" + strings.Join(common.OutputLayoutNames(), ", ") + ")"},
			&cli.StringFlag{Name: "overrides", Usage: "`DIRECTORY` with replacement chapter bodies"},
			&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "replace existing output file"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not print build summary"},
			&cli.StringFlag{Name: "force-zip-cp",
				Usage: "use `ENCODING` for ALL non UTF-8 file names in source archives (IANA character set name)"},
		},
		ArgsUsage: "CATALOG SOURCE [DESTINATION]",
		CustomHelpTemplate: cli.CommandHelpTemplate + `
CATALOG:
    series catalog, either YAML document or SQLite database (.db, .sqlite, .sqlite3)

SOURCE:
    directory with volume sources, every volume is either unpacked directory
    "SOURCE/<volume source>" or EPUB archive "SOURCE/<volume source>.epub"

DESTINATION:
    output directory, file name is derived from output_name_template,
    current working directory when absent
`,
	}
}

func catalogCommand() *cli.Command {
	sub := func(name, usage, args string, action cli.ActionFunc, flags ...cli.Flag) *cli.Command {
		return &cli.Command{
			Name:         name,
			Usage:        usage,
			ArgsUsage:    args,
			OnUsageError: usageErrorHandler,
			Action:       action,
			Flags:        flags,
		}
	}

	export := sub("export", "Saves catalog in another format", "CATALOG DESTINATION", exportCatalog)
	export.CustomHelpTemplate = fmt.Sprintf(`%s
DESTINATION:
    format is selected by extension: .db, .sqlite, .sqlite3 - SQLite database,
    anything else - YAML document
`, cli.CommandHelpTemplate)

	return &cli.Command{
		Name:            "catalog",
		Usage:           "Inspects and maintains series catalog",
		OnUsageError:    usageErrorHandler,
		HideHelpCommand: true,
		Commands: []*cli.Command{
			sub("list", "Lists volumes, or units of a single volume", "CATALOG", listCatalog,
				&cli.StringFlag{Name: "volume", Aliases: []string{"v"}, Usage: "list units of volume with `ID`"}),
			sub("validate", "Checks catalog consistency", "CATALOG", validateCatalog),
			sub("renumber", "Rewrites unit sort keys in volume order", "CATALOG [DESTINATION]", renumberCatalog,
				&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "report number of changes without saving"}),
			export,
		},
	}
}
