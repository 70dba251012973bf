package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docsitecfg/cmd/docsitecfg/commands"
	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}

	parser := kong.Parse(cli,
		kong.Name("docsitecfg"),
		kong.Description("Generates the MoneyPrinterTurbo documentation site configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(global, cli); err != nil {
		logger := global.Logger
		if logger == nil {
			logger = slog.Default()
		}
		errors.NewCLIErrorAdapter(cli.Verbose, logger).HandleError(err)
	}
}
