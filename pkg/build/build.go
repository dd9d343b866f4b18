// Package build drives "python -m build" to produce sdists and wheels for a
// project.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/datawire/dlib/dexec"
	"github.com/datawire/dlib/dlog"

	"github.com/Nsfr750/pack/pkg/python/dist"
	"github.com/Nsfr750/pack/pkg/python/pyenv"
)

// Options selects what to build and where to put it.
type Options struct {
	// Sdist and Wheel choose the artifact kinds.  If both are false, both
	// get built (the build module's own default).
	Sdist bool
	Wheel bool
	// OutDir overrides the output directory; empty means "dist" under the
	// project directory.
	OutDir string
	// NoIsolation disables the PEP 517 build-env isolation that the build
	// module normally sets up.
	NoIsolation bool
}

// Run builds the project rooted at dir and returns the artifacts that the
// invocation produced, parsed from their filenames.
func Run(ctx context.Context, py *pyenv.Interpreter, dir string, opts Options) ([]dist.Artifact, error) {
	if !py.HasModule(ctx, "build") {
		return nil, fmt.Errorf(`build: the "build" module is not installed for %s (try "pip install build")`, py.Exe)
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Join(dir, "dist")
	}
	before, err := snapshot(outDir)
	if err != nil {
		return nil, err
	}

	args := []string{"-m", "build"}
	if opts.Sdist && !opts.Wheel {
		args = append(args, "--sdist")
	}
	if opts.Wheel && !opts.Sdist {
		args = append(args, "--wheel")
	}
	if opts.NoIsolation {
		args = append(args, "--no-isolation")
	}
	args = append(args, "--outdir", outDir, dir)

	// Leave stdout/stderr unset so dexec streams them into the logger.
	cmd := dexec.CommandContext(ctx, py.Exe, args...)
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}

	artifacts, err := scan(ctx, outDir, before)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("build: no artifacts appeared in %s", outDir)
	}
	return artifacts, nil
}

// Artifacts lists every recognizable artifact in a dist directory, newest
// filename ordering not guaranteed; callers sort by version as needed.
func Artifacts(ctx context.Context, outDir string) ([]dist.Artifact, error) {
	return scan(ctx, outDir, nil)
}

// snapshot records the names and mtimes of a dist directory.  A missing
// directory is an empty snapshot, not an error.
func snapshot(outDir string) (map[string]time.Time, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("build: %w", err)
	}
	ret := make(map[string]time.Time, len(entries))
	for _, ent := range entries {
		info, err := ent.Info()
		if err != nil {
			continue
		}
		ret[ent.Name()] = info.ModTime()
	}
	return ret, nil
}

// scan parses the artifacts in outDir, skipping names that are not
// recognizable artifacts.  With a "before" snapshot, only files that
// appeared or were rewritten since it was taken count; a rebuild without a
// version bump overwrites its artifacts in place, so presence alone is not
// enough.
func scan(ctx context.Context, outDir string, before map[string]time.Time) ([]dist.Artifact, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	var ret []dist.Artifact
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		if old, ok := before[ent.Name()]; ok {
			info, err := ent.Info()
			if err != nil {
				continue
			}
			if info.ModTime().Equal(old) {
				continue
			}
		}
		artifact, err := dist.ParseFilename(ent.Name())
		if err != nil {
			dlog.Debugf(ctx, "build: ignoring %s: %v", ent.Name(), err)
			continue
		}
		artifact.Filename = filepath.Join(outDir, ent.Name())
		ret = append(ret, *artifact)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Filename < ret[j].Filename })
	return ret, nil
}
