package main

import (
	"github.com/alecthomas/kong"
	"github.com/wolfeidau/dbt-runstats/internal/commands"
)

var (
	version = "dev"
)

// CLI represents the command-line interface
type CLI struct {
	commands.Globals

	Version kong.VersionFlag `help:"Show version information"`

	Count    commands.CountCmd    `cmd:"" help:"Count dbt models built from run_results.json files (default)" default:"1"`
	Validate commands.ValidateCmd `cmd:"" help:"Validate a run_results.json file against the artifact schema"`
	Schema   commands.SchemaCmd   `cmd:"" help:"Generate the JSON schema for the run_results artifact"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("dbt-runstats"),
		kong.Description("Count dbt models built from run_results.json files"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
