package main

import (
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
)

var argparserDeps = &cobra.Command{
	Use:   "deps {[flags]|SUBCOMMAND...}",
	Short: "Inspect a project's dependencies",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserDeps)
}
