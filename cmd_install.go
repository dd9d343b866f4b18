package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/pip"
	"github.com/Nsfr750/pack/pkg/publish"
	"github.com/Nsfr750/pack/pkg/repos"
)

// installIndexURL resolves the pip --index-url for a named repository,
// splicing in whatever credentials the environment or ~/.pypirc carry.
// Repositories without credentials come back as the plain simple-API URL.
func installIndexURL(repo *repos.Repository) (string, error) {
	idx := *repo
	idx.URL = repo.SimpleURL()
	creds, err := publish.ResolveCredentials(publish.Credentials{Username: repo.Username}, repo.Name)
	if err == nil {
		idx.Username = creds.Username
		idx.Password = creds.Password
	}
	return idx.AuthURL()
}

func init() {
	var flags struct {
		Editable   bool
		NoEditable bool
		Upgrade    bool
		Repo       string
	}
	cmd := &cobra.Command{
		Use:   "install [flags] [TARGET...]",
		Short: "Install packages (or the current project) with pip",
		Long: "Install the named requirement strings with pip.  With no TARGET, " +
			"install the project in the working directory instead, in editable " +
			"(development) mode unless --no-editable says otherwise.",
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

			opts := pip.InstallOptions{
				Upgrade: flags.Upgrade,
			}
			if flags.Repo != "" {
				mgr, err := repos.Open()
				if err != nil {
					return err
				}
				repo, err := mgr.Get(flags.Repo)
				if err != nil {
					return err
				}
				if opts.IndexURL, err = installIndexURL(repo); err != nil {
					return err
				}
			}

			editable := flags.Editable && !flags.NoEditable
			targets := args
			if len(targets) == 0 {
				proj, err := loadProject(nil)
				if err != nil {
					return err
				}
				targets = []string{proj.Dir}
				opts.Editable = editable
			} else if cmd.Flags().Changed("editable") || cmd.Flags().Changed("no-editable") {
				// Editable installs only make sense for local paths, so
				// named targets stay regular unless the flag is explicit.
				opts.Editable = editable
			}
			if err := pip.Install(ctx, py, opts, targets...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %d target(s)\n", len(targets))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&flags.Editable, "editable", "e", true, "Install the project in editable (development) mode")
	cmd.Flags().BoolVar(&flags.NoEditable, "no-editable", false, "Install the project as a regular, non-editable install")
	cmd.Flags().BoolVarP(&flags.Upgrade, "upgrade", "U", false, "Upgrade already-installed packages")
	cmd.Flags().StringVar(&flags.Repo, "repo", "", "Install from the named `REPOSITORY` instead of PyPI")

	argparser.AddCommand(cmd)

	uninstall := &cobra.Command{
		Use:   "uninstall [flags] NAME...",
		Short: "Uninstall packages with pip",
		Args:  cliutil.WrapPositionalArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			py, err := interpreter(cfg)
			if err != nil {
				return err
			}
			return pip.Uninstall(cmd.Context(), py, args...)
		},
	}
	argparser.AddCommand(uninstall)
}
