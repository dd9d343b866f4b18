package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/repos"
)

var argparserRepo = &cobra.Command{
	Use:   "repo {[flags]|SUBCOMMAND...}",
	Short: "Manage package repositories",

	Args: cliutil.OnlySubcommands,
	RunE: cliutil.RunSubcommands,
}

func init() {
	argparser.AddCommand(argparserRepo)

	argparserRepo.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the configured repositories",
		Args:  cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, err := repos.Open()
			if err != nil {
				return err
			}
			tab := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintf(tab, "NAME\tURL\tUSERNAME\tDEFAULT\n")
			for _, repo := range mgr.List() {
				def := ""
				if repo.IsDefault {
					def = "*"
				}
				fmt.Fprintf(tab, "%s\t%s\t%s\t%s\n", repo.Name, repo.URL, repo.Username, def)
			}
			return tab.Flush()
		},
	})

	var addFlags struct {
		Username string
		Default  bool
	}
	addCmd := &cobra.Command{
		Use:   "add [flags] NAME URL",
		Short: "Add (or replace) a repository",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := repos.Open()
			if err != nil {
				return err
			}
			return mgr.Add(repos.Repository{
				Name:      args[0],
				URL:       args[1],
				Username:  addFlags.Username,
				IsDefault: addFlags.Default,
			})
		},
	}
	addCmd.Flags().StringVarP(&addFlags.Username, "username", "u", "", "`USERNAME` for the repository")
	addCmd.Flags().BoolVar(&addFlags.Default, "default", false, "Make this the default upload repository")
	argparserRepo.AddCommand(addCmd)

	argparserRepo.AddCommand(&cobra.Command{
		Use:   "remove [flags] NAME",
		Short: "Remove a repository",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := repos.Open()
			if err != nil {
				return err
			}
			return mgr.Remove(args[0])
		},
	})

	argparserRepo.AddCommand(&cobra.Command{
		Use:   "set-default [flags] NAME",
		Short: "Make a repository the default",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := repos.Open()
			if err != nil {
				return err
			}
			return mgr.SetDefault(args[0])
		},
	})
}
