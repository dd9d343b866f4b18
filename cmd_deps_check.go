package main

import (
	"fmt"
	"sort"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/pip"
)

func init() {
	cmd := &cobra.Command{
		Use:   "check [flags] [DIR]",
		Short: "Verify that every declared dependency is installed and in range",
		Long: "Check each dependency declared by the project against the packages " +
			"actually installed for the selected interpreter.  The command fails " +
			"when a dependency is missing or its installed version does not " +
			"satisfy the declared specifier.",
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
			declared, err := proj.Requirements()
			if err != nil {
				return err
			}
			installed, err := pip.List(ctx, py)
			if err != nil {
				return err
			}

			sort.Slice(declared, func(i, j int) bool { return declared[i].Key() < declared[j].Key() })
			out := cmd.OutOrStdout()
			bad := 0
			for _, req := range declared {
				if req.Marker != "" {
					// Environment markers may legitimately exclude
					// the requirement here; don't guess.
					dlog.Debugf(ctx, "skipping %s (environment marker %q)", req.Name, req.Marker)
					continue
				}
				pkg, ok := installed[req.Key()]
				if !ok {
					fmt.Fprintf(out, "MISSING    %s\n", req)
					bad++
					continue
				}
				ver, err := pkg.ParsedVersion()
				if err != nil {
					fmt.Fprintf(out, "UNPARSABLE %s (installed version %q)\n", req.Name, pkg.Version)
					bad++
					continue
				}
				if !req.Specifier.Match(*ver) {
					fmt.Fprintf(out, "MISMATCH   %s (installed %s)\n", req, pkg.Version)
					bad++
					continue
				}
				fmt.Fprintf(out, "OK         %s (installed %s)\n", req.Name, pkg.Version)
			}
			if bad > 0 {
				return fmt.Errorf("%d dependency problem(s)", bad)
			}
			return nil
		},
	}
	argparserDeps.AddCommand(cmd)
}
