package main

import (
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/index"
	"github.com/Nsfr750/pack/pkg/pip"
)

func init() {
	var flags struct {
		Repo string
		All  bool
	}
	cmd := &cobra.Command{
		Use:   "outdated [flags] [DIR]",
		Short: "List dependencies with a newer release on the package index",
		Long: "Compare the installed version of each of the project's dependencies " +
			"against the newest release on the index.  With --all, every installed " +
			"package is checked instead of just the project's dependencies.",
		Args: cliutil.WrapPositionalArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			py, err := interpreter(cfg)
			if err != nil {
				return err
			}
			installed, err := pip.List(ctx, py)
			if err != nil {
				return err
			}

			var keys []string
			if flags.All {
				for key := range installed {
					keys = append(keys, key)
				}
			} else {
				proj, err := loadProject(args)
				if err != nil {
					return err
				}
				declared, err := proj.Requirements()
				if err != nil {
					return err
				}
				for _, req := range declared {
					keys = append(keys, req.Key())
				}
			}
			sort.Strings(keys)

			client, err := indexClient(flags.Repo)
			if err != nil {
				return err
			}
			if info, err := py.Probe(ctx); err == nil {
				client.Python = &info.Version
			}

			tab := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintf(tab, "NAME\tINSTALLED\tLATEST\n")
			outdated := 0
			for _, key := range keys {
				pkg, ok := installed[key]
				if !ok {
					continue
				}
				latest, err := client.LatestVersion(ctx, key)
				if err != nil {
					if errors.Is(err, index.ErrNotFound) {
						dlog.Debugf(ctx, "%s: not on the index", key)
						continue
					}
					return err
				}
				ver, err := pkg.ParsedVersion()
				if err != nil {
					dlog.Warnf(ctx, "%s: unparsable installed version %q", key, pkg.Version)
					continue
				}
				if ver.Cmp(*latest) < 0 {
					fmt.Fprintf(tab, "%s\t%s\t%s\n", pkg.Name, pkg.Version, latest)
					outdated++
				}
			}
			if err := tab.Flush(); err != nil {
				return err
			}
			if outdated == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Everything is up to date.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Repo, "repo", "", "Query the named `REPOSITORY` instead of PyPI")
	cmd.Flags().BoolVar(&flags.All, "all", false, "Check every installed package, not just the project's dependencies")

	argparserDeps.AddCommand(cmd)
}
