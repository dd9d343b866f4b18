package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/project"
)

func writeProject(t *testing.T, filename, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644))
	return dir
}

func TestLoadPyproject(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "pyproject.toml", `
[build-system]
requires = ["setuptools>=61.0"]
build-backend = "setuptools.build_meta"

[project]
name = "demo-pkg"
version = "0.3.1"
description = "A demonstration package"
requires-python = ">=3.8"
license = { text = "MIT" }
authors = [{ name = "Jane Doe", email = "jane@example.com" }]
dependencies = [
    "requests>=2.25",
    "click~=8.0",
]
`)

	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo-pkg", proj.Name)
	assert.Equal(t, "0.3.1", proj.Version)
	assert.Equal(t, "MIT", proj.License)
	assert.Equal(t, ">=3.8", proj.RequiresPython)
	require.Len(t, proj.Authors, 1)
	assert.Equal(t, "Jane Doe", proj.Authors[0].Name)

	ver, err := proj.ParsedVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.3.1", ver.String())

	parsed, err := proj.Requirements()
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, "requests", parsed[0].Name)
	assert.Equal(t, "~=8.0", parsed[1].Specifier.String())
}

func TestLoadPyprojectSPDXLicense(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "pyproject.toml", `
[project]
name = "spdx-demo"
version = "1.0"
license = "Apache-2.0"
`)
	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "Apache-2.0", proj.License)
}

func TestLoadSetupPyFallback(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "setup.py", `
from setuptools import setup, find_packages

setup(
    name="legacy-pkg",
    version="2.4.0",
    packages=find_packages(),
)
`)

	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "legacy-pkg", proj.Name)
	assert.Equal(t, "2.4.0", proj.Version)
}

func TestRequirementsTxtFallback(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "setup.py", `
setup(name="legacy-pkg", version="2.4.0")
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte(`
# runtime deps
requests>=2.25
click
`), 0o644))

	proj, err := project.Load(dir)
	require.NoError(t, err)
	deps, err := proj.Requirements()
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "requests", deps[0].Name)
	assert.Equal(t, "click", deps[1].Name)
}

func TestPyprojectWinsOverSetupPy(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"),
		[]byte("[project]\nname = \"modern\"\nversion = \"1.0\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"),
		[]byte("setup(name='old', version='0.1')\n"), 0o644))

	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "modern", proj.Name)
}

func TestLoadEmptyDir(t *testing.T) {
	t.Parallel()
	_, err := project.Load(t.TempDir())
	assert.ErrorIs(t, err, project.ErrNoMetadata)
}

func TestLoadBadToml(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "pyproject.toml", "[[[\n")
	_, err := project.Load(dir)
	assert.Error(t, err)
}

func TestLoadPyprojectWithoutName(t *testing.T) {
	t.Parallel()
	dir := writeProject(t, "pyproject.toml", "[tool.black]\nline-length = 100\n")
	_, err := project.Load(dir)
	assert.Error(t, err)
}

func TestSlug(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "demo_pkg", project.Slug("demo-pkg"))
	assert.Equal(t, "my_tool", project.Slug("My.Tool"))
}
