package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/project"
	"github.com/Nsfr750/pack/pkg/python/pep440"
	"github.com/Nsfr750/pack/pkg/scaffold"
)

func init() {
	var flags struct {
		Template    string
		Version     string
		Description string
		Author      string
		Email       string
		License     string
		List        bool
	}
	cmd := &cobra.Command{
		Use:   "init [flags] NAME [DIR]",
		Short: "Create a new Python project from a template",
		Long: "Create a new Python project named NAME in DIR (default: ./NAME).  " +
			"The directory must not already contain a project." +
			"\n\n" +
			"Use --list to see the available templates.",
		Args: cliutil.WrapPositionalArgs(cobra.RangeArgs(0, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if flags.List {
				templates := scaffold.List()
				sort.Slice(templates, func(i, j int) bool { return templates[i].Name < templates[j].Name })
				for _, tpl := range templates {
					fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", tpl.Name, tpl.Description)
				}
				return nil
			}
			if len(args) < 1 {
				return cliutil.FlagErrorFunc(cmd, fmt.Errorf("a project NAME is required"))
			}
			name := args[0]
			for _, char := range name {
				if !(('a' <= char && char <= 'z') ||
					('A' <= char && char <= 'Z') ||
					('0' <= char && char <= '9') ||
					char == '.' || char == '-' || char == '_') {
					return fmt.Errorf("invalid project name %q: illegal character %q", name, char)
				}
			}
			if _, err := pep440.Parse(flags.Version); err != nil {
				return err
			}

			dir := filepath.Join(".", name)
			if len(args) == 2 {
				dir = args[1]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			tpl, err := scaffold.Get(flags.Template)
			if err != nil {
				return err
			}
			written, err := tpl.Create(dir, scaffold.Data{
				Name:        name,
				Module:      project.Slug(name),
				Version:     flags.Version,
				Description: flags.Description,
				Author:      flags.Author,
				Email:       flags.Email,
				License:     flags.License,
			})
			if err != nil {
				return err
			}
			for _, path := range written {
				dlog.Debugf(ctx, "wrote %s", path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %q project %s in %s (%d files)\n",
				flags.Template, name, dir, len(written))
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.Template, "template", "t", "basic", "Project `TEMPLATE` to instantiate")
	cmd.Flags().StringVar(&flags.Version, "version", "0.1.0", "Initial `VERSION`")
	cmd.Flags().StringVar(&flags.Description, "description", "", "One-line project `DESCRIPTION`")
	cmd.Flags().StringVar(&flags.Author, "author", "", "Author `NAME`")
	cmd.Flags().StringVar(&flags.Email, "email", "", "Author `EMAIL`")
	cmd.Flags().StringVar(&flags.License, "license", "MIT", "`LICENSE` identifier")
	cmd.Flags().BoolVar(&flags.List, "list", false, "List the available templates and exit")

	argparser.AddCommand(cmd)
}
