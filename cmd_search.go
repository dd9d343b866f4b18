package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/index"
	"github.com/Nsfr750/pack/pkg/repos"
)

// indexClient builds an index client for a --repo flag value ("" means
// PyPI).
func indexClient(repoName string) (*index.Client, error) {
	client := &index.Client{}
	if repoName != "" {
		mgr, err := repos.Open()
		if err != nil {
			return nil, err
		}
		repo, err := mgr.Get(repoName)
		if err != nil {
			return nil, err
		}
		client.BaseURL = repo.SimpleURL()
		client.Username = repo.Username
		client.Password = repo.Password
	}
	return client, nil
}

func init() {
	var searchFlags struct {
		Repo string
	}
	searchCmd := &cobra.Command{
		Use:   "search [flags] NAME",
		Short: "Look up a project's files on the package index",
		Long: "Fetch the index's simple-API page for NAME and list the files it " +
			"offers.  A missing page means the project does not exist under that " +
			"name.",
		Args: cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := indexClient(searchFlags.Repo)
			if err != nil {
				return err
			}
			files, err := client.ProjectFiles(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, file := range files {
				suffix := ""
				if file.Yanked {
					suffix = " (yanked)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", file.Filename, suffix)
			}
			return nil
		},
	}
	searchCmd.Flags().StringVar(&searchFlags.Repo, "repo", "", "Query the named `REPOSITORY` instead of PyPI")
	argparser.AddCommand(searchCmd)

	var releasesFlags struct {
		Repo string
	}
	releasesCmd := &cobra.Command{
		Use:   "releases [flags] NAME",
		Short: "List a project's release versions on the package index",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := indexClient(releasesFlags.Repo)
			if err != nil {
				return err
			}
			versions, err := client.Releases(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, version := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			}
			return nil
		},
	}
	releasesCmd.Flags().StringVar(&releasesFlags.Repo, "repo", "", "Query the named `REPOSITORY` instead of PyPI")
	argparser.AddCommand(releasesCmd)
}
