// Package project reads a Python project's packaging metadata: a PEP 621
// pyproject.toml when present, with a best-effort setup.py fallback for
// legacy layouts.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Nsfr750/pack/pkg/python/pep440"
	"github.com/Nsfr750/pack/pkg/python/reqs"
)

// ErrNoMetadata means the directory has neither pyproject.toml nor setup.py.
var ErrNoMetadata = errors.New("no pyproject.toml or setup.py found")

type Author struct {
	Name  string `toml:"name,omitempty"`
	Email string `toml:"email,omitempty"`
}

// Project is the metadata of one project directory.
type Project struct {
	// Dir is the project root.
	Dir string
	// Source is the file the metadata came from.
	Source string

	Name           string
	Version        string
	Description    string
	License        string
	Authors        []Author
	RequiresPython string
	Dependencies   []string
}

// Load reads the metadata from dir.
func Load(dir string) (*Project, error) {
	if path := filepath.Join(dir, "pyproject.toml"); fileExists(path) {
		return loadPyproject(dir, path)
	}
	if path := filepath.Join(dir, "setup.py"); fileExists(path) {
		return loadSetupPy(dir, path)
	}
	return nil, fmt.Errorf("project: %s: %w", dir, ErrNoMetadata)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ParsedVersion parses Version; empty if the project declares none
// (dynamic versioning).
func (proj *Project) ParsedVersion() (*pep440.Version, error) {
	if proj.Version == "" {
		return nil, fmt.Errorf("project: %s declares no static version", proj.Name)
	}
	return pep440.Parse(proj.Version)
}

// Requirements parses the declared dependencies.  Projects that declare
// none in their metadata (setup.py projects especially) fall back to a
// requirements.txt next to it, when present.
func (proj *Project) Requirements() ([]reqs.Requirement, error) {
	if len(proj.Dependencies) == 0 {
		path := filepath.Join(proj.Dir, "requirements.txt")
		file, err := os.Open(path)
		if err == nil {
			defer func() { _ = file.Close() }()
			ret, err := reqs.ParseFile(file)
			if err != nil {
				return nil, fmt.Errorf("project: %s: %w", path, err)
			}
			return ret, nil
		}
	}
	ret := make([]reqs.Requirement, 0, len(proj.Dependencies))
	for _, dep := range proj.Dependencies {
		req, err := reqs.Parse(dep)
		if err != nil {
			return nil, fmt.Errorf("project: %s: dependency %q: %w", proj.Source, dep, err)
		}
		ret = append(ret, *req)
	}
	return ret, nil
}

type pyprojectFile struct {
	Project *struct {
		Name           string   `toml:"name"`
		Version        string   `toml:"version"`
		Description    string   `toml:"description"`
		RequiresPython string   `toml:"requires-python"`
		License        any      `toml:"license"`
		Authors        []Author `toml:"authors"`
		Dependencies   []string `toml:"dependencies"`
	} `toml:"project"`
}

func loadPyproject(dir, path string) (*Project, error) {
	var file pyprojectFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("project: %s: %w", path, err)
	}
	if file.Project == nil || file.Project.Name == "" {
		return nil, fmt.Errorf("project: %s: no [project] table with a name", path)
	}
	return &Project{
		Dir:            dir,
		Source:         path,
		Name:           file.Project.Name,
		Version:        file.Project.Version,
		Description:    file.Project.Description,
		License:        licenseString(file.Project.License),
		Authors:        file.Project.Authors,
		RequiresPython: file.Project.RequiresPython,
		Dependencies:   file.Project.Dependencies,
	}, nil
}

// licenseString flattens the PEP 621 license field, which may be a plain
// SPDX string or a {text = "..."} / {file = "..."} table.
func licenseString(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any:
		if text, ok := v["text"].(string); ok {
			return text
		}
		if file, ok := v["file"].(string); ok {
			return file
		}
	}
	return ""
}

var (
	reSetupName    = regexp.MustCompile(`name\s*=\s*['"]([^'"]+)['"]`)
	reSetupVersion = regexp.MustCompile(`version\s*=\s*['"]([^'"]+)['"]`)
)

// loadSetupPy scrapes name and version out of a setup() call.  This is the
// same heuristic the interactive frontends have always used; anything beyond
// name/version needs a pyproject.toml.
func loadSetupPy(dir, path string) (*Project, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := string(bs)
	proj := &Project{
		Dir:    dir,
		Source: path,
	}
	if m := reSetupName.FindStringSubmatch(content); m != nil {
		proj.Name = m[1]
	}
	if m := reSetupVersion.FindStringSubmatch(content); m != nil {
		proj.Version = m[1]
	}
	if proj.Name == "" {
		return nil, fmt.Errorf("project: %s: could not determine the package name", path)
	}
	return proj, nil
}

// DistDir returns the directory build artifacts land in.
func (proj *Project) DistDir() string {
	return filepath.Join(proj.Dir, "dist")
}

// Slug returns the project name as an importable module name: normalized,
// with hyphens turned into underscores.
func Slug(name string) string {
	return strings.ReplaceAll(reqs.NormalizeName(name), "-", "_")
}
