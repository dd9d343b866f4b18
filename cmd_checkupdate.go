package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/index"
	"github.com/Nsfr750/pack/pkg/python/pep440"
)

// updateProject is the index project that releases of this tool publish
// under.
const updateProject = "pypack"

func init() {
	var flags struct {
		Force bool
	}
	cmd := &cobra.Command{
		Use:   "check-update [flags]",
		Short: "Check whether a newer release of this tool exists",
		Long: "Ask the package index for the newest release of this tool and compare " +
			"it against the running version.  The check_for_updates configuration " +
			"key disables the check; --force runs it anyway.",
		Args: cliutil.WrapPositionalArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.CheckForUpdates && !flags.Force {
				fmt.Fprintln(cmd.OutOrStdout(),
					"Update checks are disabled (set check_for_updates=true, or use --force).")
				return nil
			}

			current, err := pep440.Parse(Version)
			if err != nil {
				return fmt.Errorf("running version %q: %w", Version, err)
			}

			client := &index.Client{}
			latest, err := client.LatestVersion(cmd.Context(), updateProject)
			if err != nil {
				if errors.Is(err, index.ErrNotFound) {
					fmt.Fprintln(cmd.OutOrStdout(), "No releases found on the index.")
					return nil
				}
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case current.Cmp(*latest) < 0:
				fmt.Fprintf(out, "A newer release is available: %s (running %s)\n", latest, current)
			default:
				fmt.Fprintf(out, "Up to date (running %s, newest release %s)\n", current, latest)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Check even when check_for_updates is disabled")

	argparser.AddCommand(cmd)
}
