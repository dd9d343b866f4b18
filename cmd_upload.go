package main

import (
	"fmt"

	"github.com/datawire/dlib/dlog"
	"github.com/spf13/cobra"

	"github.com/Nsfr750/pack/pkg/build"
	"github.com/Nsfr750/pack/pkg/cliutil"
	"github.com/Nsfr750/pack/pkg/project"
	"github.com/Nsfr750/pack/pkg/publish"
	"github.com/Nsfr750/pack/pkg/python/dist"
	"github.com/Nsfr750/pack/pkg/repos"
)

func init() {
	var flags struct {
		Repo         string
		Sign         bool
		KeyID        string
		SkipExisting bool
		Username     string
		All          bool
	}
	cmd := &cobra.Command{
		Use:   "upload [flags] [DIR]",
		Short: "Upload built distributions to a package repository",
		Long: "Upload every artifact in the project's dist/ directory to a " +
			"configured repository (default: the default repository, normally " +
			"pypi).  Credentials come from TWINE_USERNAME/TWINE_PASSWORD or from " +
			"~/.pypirc." +
			"\n\n" +
			"With --sign, each artifact gets a detached GPG signature uploaded " +
			"alongside it.",
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

			mgr, err := repos.Open()
			if err != nil {
				return err
			}
			var repo *repos.Repository
			if flags.Repo == "" {
				repo = mgr.Default()
			} else if repo, err = mgr.Get(flags.Repo); err != nil {
				return err
			}

			artifacts, err := build.Artifacts(ctx, proj.DistDir())
			if err != nil {
				return err
			}
			if !flags.All {
				artifacts = currentArtifacts(proj, artifacts)
			}
			if len(artifacts) == 0 {
				return fmt.Errorf("nothing to upload in %s (run \"pypack build\" first, or --all for older versions)", proj.DistDir())
			}
			files := make([]string, 0, len(artifacts))
			for _, artifact := range artifacts {
				files = append(files, artifact.Filename)
			}

			var sigs []string
			if flags.Sign {
				if sigs, err = publish.Sign(ctx, flags.KeyID, files); err != nil {
					return err
				}
				dlog.Infof(ctx, "signed %d artifact(s)", len(sigs))
			}

			err = publish.Upload(ctx, py, repo, files, publish.UploadOptions{
				Credentials:  publish.Credentials{Username: flags.Username},
				SkipExisting: flags.SkipExisting,
				Signatures:   sigs,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d file(s) to %s\n", len(files), repo.Name)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.Repo, "repo", "r", "", "Upload to the named `REPOSITORY`")
	cmd.Flags().BoolVar(&flags.Sign, "sign", false, "Sign artifacts with GPG before uploading")
	cmd.Flags().StringVar(&flags.KeyID, "identity", "", "GPG `KEY` to sign with")
	cmd.Flags().BoolVar(&flags.SkipExisting, "skip-existing", false, "Do not fail if the server already has a file")
	cmd.Flags().StringVarP(&flags.Username, "username", "u", "", "Repository `USERNAME`")
	cmd.Flags().BoolVar(&flags.All, "all", false, "Upload every artifact in dist/, not just the current version")

	argparser.AddCommand(cmd)
}

// currentArtifacts filters to the artifacts of the project's declared
// version, so stale builds lying around in dist/ do not get uploaded.
// Projects with dynamic versioning keep everything.
func currentArtifacts(proj *project.Project, artifacts []dist.Artifact) []dist.Artifact {
	ver, err := proj.ParsedVersion()
	if err != nil {
		return artifacts
	}
	var ret []dist.Artifact
	for _, artifact := range artifacts {
		if artifact.Version.Cmp(*ver) == 0 {
			ret = append(ret, artifact)
		}
	}
	return ret
}
