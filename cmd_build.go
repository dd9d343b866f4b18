package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/build"
	"github.com/Nsfr750/pack/pkg/cliutil"
)

func init() {
	var flags struct {
		Sdist       bool
		Wheel       bool
		OutDir      string
		NoIsolation bool
	}
	cmd := &cobra.Command{
		Use:   "build [flags] [DIR]",
		Short: "Build sdist and wheel distributions for a project",
		Long: "Run the standard PEP 517 build for the project in DIR (default: the " +
			"working directory), placing the artifacts in its dist/ directory.  " +
			"With --sdist or --wheel only that artifact kind gets built.",
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
			proj, err := loadProject(args)
			if err != nil {
				return err
			}

			artifacts, err := build.Run(ctx, py, proj.Dir, build.Options{
				Sdist:       flags.Sdist,
				Wheel:       flags.Wheel,
				OutDir:      flags.OutDir,
				NoIsolation: flags.NoIsolation,
			})
			if err != nil {
				return err
			}
			for _, artifact := range artifacts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", artifact.Kind, artifact.Filename)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flags.Sdist, "sdist", false, "Build only the source distribution")
	cmd.Flags().BoolVar(&flags.Wheel, "wheel", false, "Build only the wheel")
	cmd.Flags().StringVarP(&flags.OutDir, "outdir", "o", "", "Write artifacts to `DIR` instead of dist/")
	cmd.Flags().BoolVar(&flags.NoIsolation, "no-isolation", false, "Build without a PEP 517 build environment")

	argparser.AddCommand(cmd)
}
