// Package publish signs and uploads built artifacts.  Signing shells out to
// gpg; uploading shells out to twine, which owns the upload protocol and its
// many server quirks.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/datawire/dlib/dexec"

	"github.com/Nsfr750/pack/pkg/python/pyenv"
	"github.com/Nsfr750/pack/pkg/repos"
)

// Sign produces a detached ASCII-armored signature next to each file and
// returns the signature paths.
func Sign(ctx context.Context, keyID string, files []string) ([]string, error) {
	gpg, err := dexec.LookPath("gpg")
	if err != nil {
		return nil, fmt.Errorf("publish: gpg not found on $PATH: %w", err)
	}
	sigs := make([]string, 0, len(files))
	for _, file := range files {
		sig := file + ".asc"
		// gpg refuses to overwrite; a stale signature from a prior run
		// would fail the whole upload.
		if err := os.Remove(sig); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("publish: %w", err)
		}
		args := []string{"--batch", "--yes", "--detach-sign", "--armor"}
		if keyID != "" {
			args = append(args, "--local-user", keyID)
		}
		args = append(args, file)
		if err := dexec.CommandContext(ctx, gpg, args...).Run(); err != nil {
			return nil, fmt.Errorf("publish: signing %s: %w", file, err)
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// UploadOptions configures Upload.
type UploadOptions struct {
	// Explicit credentials; anything unset falls back to the TWINE_*
	// environment and then to ~/.pypirc.
	Credentials Credentials
	// SkipExisting tells the server to ignore files it already has instead
	// of failing the upload.
	SkipExisting bool
	// Sign attaches pre-made .asc signatures alongside the artifacts.
	Signatures []string
}

// Upload pushes files to a repository with twine.  Credentials travel in the
// environment, never on the command line.
func Upload(ctx context.Context, py *pyenv.Interpreter, repo *repos.Repository, files []string, opts UploadOptions) error {
	if len(files) == 0 {
		return errors.New("publish: nothing to upload")
	}
	if !py.HasModule(ctx, "twine") {
		return fmt.Errorf(`publish: the "twine" module is not installed for %s (try "pip install twine")`, py.Exe)
	}

	explicit := opts.Credentials
	if explicit.Username == "" {
		explicit.Username = repo.Username
	}
	creds, err := ResolveCredentials(explicit, repo.Name)
	if err != nil {
		return err
	}
	uploadURL := repo.URL
	if creds.URL != "" {
		uploadURL = creds.URL
	}

	args := []string{"-m", "twine", "upload", "--non-interactive", "--repository-url", uploadURL}
	if opts.SkipExisting {
		args = append(args, "--skip-existing")
	}
	args = append(args, files...)
	args = append(args, opts.Signatures...)

	cmd := dexec.CommandContext(ctx, py.Exe, args...)
	cmd.Env = append(os.Environ(),
		"TWINE_USERNAME="+creds.Username,
		"TWINE_PASSWORD="+creds.Password,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
