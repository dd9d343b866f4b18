package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/config"
)

var argparserConfig = &cobra.Command{
	Use:   "config {[flags]|SUBCOMMAND...}",
	Short: "Read and write the user configuration",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserConfig)

	argparserConfig.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every configuration key and its current value",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			for _, key := range config.Keys() {
				value, err := cfg.Get(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, value)
			}
			return nil
		},
	})

	argparserConfig.AddCommand(&cobra.Command{
		Use:   "get [flags] KEY",
		Short: "Print one configuration value",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	argparserConfig.AddCommand(&cobra.Command{
		Use:   "set [flags] KEY VALUE",
		Short: "Change a configuration value",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			return cfg.Save()
		},
	})
}
