// Package pyenv locates and interrogates the Python interpreter that the
// tool drives.
package pyenv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/datawire/dlib/dexec"

	"github.com/Nsfr750/pack/pkg/python/pep440"
)

// Interpreter is a resolved Python executable.
type Interpreter struct {
	Exe string
}

// Find resolves the interpreter to use.  A non-empty override (the
// "python_path" config key) wins; otherwise the usual names are tried on
// $PATH.
func Find(override string) (*Interpreter, error) {
	if override != "" {
		exe, err := dexec.LookPath(override)
		if err != nil {
			return nil, fmt.Errorf("pyenv: configured python_path: %w", err)
		}
		return &Interpreter{Exe: exe}, nil
	}
	for _, name := range []string{"python3", "python"} {
		if exe, err := dexec.LookPath(name); err == nil {
			return &Interpreter{Exe: exe}, nil
		}
	}
	return nil, errors.New("pyenv: no python3 or python found on $PATH; set the python_path configuration key")
}

// Info is what Probe learns about an interpreter.
type Info struct {
	Version    pep440.Version
	Executable string
	Prefix     string
}

// probeScript dumps everything in one interpreter launch.
const probeScript = `
import json
import platform
import sys

json.dump({
  "Version": platform.python_version(),
  "Executable": sys.executable,
  "Prefix": sys.prefix,
}, sys.stdout)
`

// Probe runs the interpreter to determine its version and layout.
func (py *Interpreter) Probe(ctx context.Context) (*Info, error) {
	cmd := dexec.CommandContext(ctx, py.Exe, "-c", probeScript)
	cmd.DisableLogging = true
	bs, err := cmd.Output()
	if err != nil {
		var exitErr *dexec.ExitError
		if errors.As(err, &exitErr) {
			err = fmt.Errorf("%w:\n > %s", err,
				strings.Join(strings.Split(strings.TrimRight(string(exitErr.Stderr), "\n"), "\n"), "\n > "))
		}
		return nil, fmt.Errorf("pyenv: probing %s: %w", py.Exe, err)
	}
	var raw struct {
		Version    string
		Executable string
		Prefix     string
	}
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, fmt.Errorf("pyenv: probing %s: %w", py.Exe, err)
	}
	ver, err := pep440.Parse(raw.Version)
	if err != nil {
		return nil, fmt.Errorf("pyenv: probing %s: %w", py.Exe, err)
	}
	return &Info{
		Version:    *ver,
		Executable: raw.Executable,
		Prefix:     raw.Prefix,
	}, nil
}

// HasModule reports whether "python -m name" would find the module.  Used to
// give a useful error before attempting a build or upload.
func (py *Interpreter) HasModule(ctx context.Context, name string) bool {
	cmd := dexec.CommandContext(ctx, py.Exe, "-c",
		fmt.Sprintf("import importlib.util, sys; sys.exit(0 if importlib.util.find_spec(%q) else 1)", name))
	cmd.DisableLogging = true
	return cmd.Run() == nil
}
