package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/taxogen/cmd/taxogen/commands"
	"git.home.luguber.info/inful/taxogen/internal/foundation/errors"
	"git.home.luguber.info/inful/taxogen/internal/version"
)

func main() {
	cli := &commands.CLI{}
	g := commands.NewGlobal(os.Stdout)
	parser := kong.Parse(cli,
		kong.Name("taxogen"),
		kong.Description("Classify content into taxonomies and plan the pages and feeds to render."),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	)

	err := parser.Run(g, cli)
	if ferr := g.Flush(cli); err == nil {
		err = ferr
	}
	errors.NewCLIErrorAdapter(cli.Verbose, nil).HandleError(err)
}
