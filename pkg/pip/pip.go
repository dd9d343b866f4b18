// Package pip drives the interpreter's pip for installed-package queries and
// install/uninstall operations.  Output of the mutating operations streams to
// the logger as it arrives.
package pip

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"

	"github.com/Nsfr750/pack/pkg/python/pep440"
	"github.com/Nsfr750/pack/pkg/python/pyenv"
)

// Installed is one entry of "pip list".
type Installed struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ParsedVersion parses the version field; pip itself only emits PEP 440
// versions here.
func (pkg Installed) ParsedVersion() (*pep440.Version, error) {
	return pep440.Parse(pkg.Version)
}

// List returns the packages installed for the interpreter, keyed by
// normalized name.
func List(ctx context.Context, py *pyenv.Interpreter) (map[string]Installed, error) {
	cmd := dexec.CommandContext(ctx, py.Exe, "-m", "pip", "list", "--format=json")
	cmd.DisableLogging = true
	bs, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pip list: %w", commandErr(err))
	}
	return ParseListOutput(bs)
}

// Show returns the metadata of one installed package.
func Show(ctx context.Context, py *pyenv.Interpreter, name string) (*Metadata, error) {
	cmd := dexec.CommandContext(ctx, py.Exe, "-m", "pip", "show", name)
	cmd.DisableLogging = true
	bs, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pip show %s: %w", name, commandErr(err))
	}
	md, err := ParseShowOutput(bs)
	if err != nil {
		return nil, fmt.Errorf("pip show %s: %w", name, err)
	}
	return md, nil
}

// InstallOptions control an install run.
type InstallOptions struct {
	// Editable is a development-mode install ("pip install -e DIR").
	Editable bool
	Upgrade  bool
	// IndexURL overrides the package index.
	IndexURL string
}

// Install installs the given targets (requirement strings, or a project
// directory).  The pip output is streamed to the logger.
func Install(ctx context.Context, py *pyenv.Interpreter, opts InstallOptions, targets ...string) error {
	args := []string{"-m", "pip", "install"}
	if opts.Editable {
		args = append(args, "-e")
	}
	if opts.Upgrade {
		args = append(args, "--upgrade")
	}
	if opts.IndexURL != "" {
		args = append(args, "--index-url", opts.IndexURL)
	}
	args = append(args, targets...)
	cmd := dexec.CommandContext(ctx, py.Exe, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install: %w", err)
	}
	return nil
}

// Uninstall removes packages; pip's confirmation prompt is suppressed.
func Uninstall(ctx context.Context, py *pyenv.Interpreter, names ...string) error {
	args := append([]string{"-m", "pip", "uninstall", "--yes"}, names...)
	cmd := dexec.CommandContext(ctx, py.Exe, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip uninstall: %w", err)
	}
	return nil
}

// commandErr folds a child's stderr into the error text.
func commandErr(err error) error {
	var exitErr *dexec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
	}
	return err
}
