package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/pip"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show [flags] NAME",
		Short: "Show pip's metadata for an installed package",
		Args:  cliutil.WrapPositionalArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			py, err := interpreter(cfg)
			if err != nil {
				return err
			}
			meta, err := pip.Show(cmd.Context(), py, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", meta.Name)
			fmt.Fprintf(out, "Version:     %s\n", meta.Version)
			if meta.Summary != "" {
				fmt.Fprintf(out, "Summary:     %s\n", meta.Summary)
			}
			if meta.HomePage != "" {
				fmt.Fprintf(out, "Home-page:   %s\n", meta.HomePage)
			}
			if meta.Author != "" {
				fmt.Fprintf(out, "Author:      %s\n", meta.Author)
			}
			if meta.License != "" {
				fmt.Fprintf(out, "License:     %s\n", meta.License)
			}
			if meta.Location != "" {
				fmt.Fprintf(out, "Location:    %s\n", meta.Location)
			}
			if len(meta.Requires) > 0 {
				fmt.Fprintf(out, "Requires:    %s\n", strings.Join(meta.Requires, ", "))
			}
			if len(meta.RequiredBy) > 0 {
				fmt.Fprintf(out, "Required-by: %s\n", strings.Join(meta.RequiredBy, ", "))
			}
			return nil
		},
	}
	argparserDeps.AddCommand(cmd)
}
