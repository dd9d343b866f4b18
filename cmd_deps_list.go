package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/pip"
	"github.com/Nsfr750/pack/pkg/python/reqs"
)

func init() {
	var flags struct {
		Project bool
	}
	cmd := &cobra.Command{
		Use:   "list [flags] [DIR]",
		Short: "List the packages installed for the configured interpreter",
		Long: "List every package installed for the configured interpreter.  " +
			"With --project, list the project's declared requirements instead, " +
			"next to whatever version is actually installed.",
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
			if !flags.Project {
				return printInstalled(cmd.OutOrStdout(), installed)
			}

			proj, err := loadProject(args)
			if err != nil {
				return err
			}
			declared, err := proj.Requirements()
			if err != nil {
				return err
			}
			return printDeclared(cmd.OutOrStdout(), declared, installed)
		},
	}
	cmd.Flags().BoolVar(&flags.Project, "project", false, "List the project's declared requirements instead")
	argparserDeps.AddCommand(cmd)
}

func printInstalled(w io.Writer, installed map[string]pip.Installed) error {
	keys := make([]string, 0, len(installed))
	for key := range installed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	tab := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tab, "NAME\tVERSION\n")
	for _, key := range keys {
		pkg := installed[key]
		fmt.Fprintf(tab, "%s\t%s\n", pkg.Name, pkg.Version)
	}
	return tab.Flush()
}

func printDeclared(w io.Writer, declared []reqs.Requirement, installed map[string]pip.Installed) error {
	sort.Slice(declared, func(i, j int) bool { return declared[i].Key() < declared[j].Key() })
	tab := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tab, "NAME\tREQUIRED\tINSTALLED\n")
	for _, req := range declared {
		got := "-"
		if pkg, ok := installed[req.Key()]; ok {
			got = pkg.Version
		}
		spec := req.Specifier.String()
		if spec == "" {
			spec = "*"
		}
		fmt.Fprintf(tab, "%s\t%s\t%s\n", req.Name, spec, got)
	}
	return tab.Flush()
}
