package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/python/pep440"
)

func init() {
	var flags struct {
		Repo   string
		OutDir string
	}
	cmd := &cobra.Command{
		Use:   "download [flags] NAME [VERSION]",
		Short: "Download a release's files from the package index",
		Long: "Download every file of NAME's given release (default: the latest " +
			"release) into a local directory, verifying the checksums the index " +
			"advertises.",
		Args: cliutil.WrapPositionalArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := indexClient(flags.Repo)
			if err != nil {
				return err
			}

			var version pep440.Version
			if len(args) == 2 {
				ver, err := pep440.Parse(args[1])
				if err != nil {
					return err
				}
				version = *ver
			} else {
				latest, err := client.LatestVersion(ctx, args[0])
				if err != nil {
					return err
				}
				version = *latest
			}

			files, err := client.ReleaseFiles(ctx, args[0], version)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(flags.OutDir, 0o755); err != nil {
				return err
			}
			for _, file := range files {
				content, err := file.Download(ctx)
				if err != nil {
					return err
				}
				path := filepath.Join(flags.OutDir, filepath.Base(file.Filename))
				if err := os.WriteFile(path, content, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Repo, "repo", "", "Query the named `REPOSITORY` instead of PyPI")
	cmd.Flags().StringVarP(&flags.OutDir, "outdir", "o", ".", "Write the files into `DIR`")
	argparser.AddCommand(cmd)
}
