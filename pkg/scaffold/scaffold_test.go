package scaffold_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/project"
	"github.com/Nsfr750/pack/pkg/scaffold"
)

func TestList(t *testing.T) {
	t.Parallel()
	tpls := scaffold.List()
	require.NotEmpty(t, tpls)
	names := make(map[string]struct{}, len(tpls))
	for _, tpl := range tpls {
		assert.NotEmpty(t, tpl.Description, "template %q has no description", tpl.Name)
		names[tpl.Name] = struct{}{}
	}
	assert.Contains(t, names, "basic")
	assert.Contains(t, names, "cli")
	assert.Contains(t, names, "web")
	assert.Contains(t, names, "data-science")
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()
	_, err := scaffold.Get("no-such-template")
	assert.Error(t, err)
}

func TestCreateBasic(t *testing.T) {
	t.Parallel()
	tpl, err := scaffold.Get("basic")
	require.NoError(t, err)

	dir := t.TempDir()
	written, err := tpl.Create(dir, scaffold.Data{
		Name:        "my-pkg",
		Module:      "my_pkg",
		Version:     "0.1.0",
		Description: "A test package",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		License:     "MIT",
	})
	require.NoError(t, err)
	assert.Contains(t, written, "pyproject.toml")
	assert.Contains(t, written, filepath.Join("my_pkg", "__init__.py"))

	initPy, err := os.ReadFile(filepath.Join(dir, "my_pkg", "__init__.py"))
	require.NoError(t, err)
	assert.Contains(t, string(initPy), `__version__ = "0.1.0"`)

	proj, err := project.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-pkg", proj.Name)
	assert.Equal(t, "0.1.0", proj.Version)
	assert.Equal(t, "A test package", proj.Description)
	assert.Equal(t, "MIT", proj.License)
	require.Len(t, proj.Authors, 1)
	assert.Equal(t, "Jane Doe", proj.Authors[0].Name)
}

func TestCreateCLI(t *testing.T) {
	t.Parallel()
	tpl, err := scaffold.Get("cli")
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = tpl.Create(dir, scaffold.Data{
		Name:        "mytool",
		Module:      "mytool",
		Version:     "1.0.0",
		Description: "A CLI tool",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		License:     "MIT",
	})
	require.NoError(t, err)

	proj, err := project.Load(dir)
	require.NoError(t, err)
	deps, err := proj.Requirements()
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "click", deps[0].Name)

	cliPy, err := os.ReadFile(filepath.Join(dir, "mytool", "cli.py"))
	require.NoError(t, err)
	assert.Contains(t, string(cliPy), "import click")
}

func TestCreateWeb(t *testing.T) {
	t.Parallel()
	tpl, err := scaffold.Get("web")
	require.NoError(t, err)

	dir := t.TempDir()
	_, err = tpl.Create(dir, scaffold.Data{
		Name:        "my-site",
		Module:      "my_site",
		Version:     "0.1.0",
		Description: "A web app",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		License:     "MIT",
	})
	require.NoError(t, err)

	proj, err := project.Load(dir)
	require.NoError(t, err)
	deps, err := proj.Requirements()
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "flask", deps[0].Name)

	appPy, err := os.ReadFile(filepath.Join(dir, "my_site", "app.py"))
	require.NoError(t, err)
	assert.Contains(t, string(appPy), "from flask import Flask")

	// The HTML goes through text/template too; the Jinja tags must come out
	// intact.
	indexHTML, err := os.ReadFile(filepath.Join(dir, "my_site", "templates", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(indexHTML), `{% extends "base.html" %}`)
	assert.Contains(t, string(indexHTML), "Welcome to my-site!")
}

func TestCreateDataScience(t *testing.T) {
	t.Parallel()
	tpl, err := scaffold.Get("data-science")
	require.NoError(t, err)

	dir := t.TempDir()
	written, err := tpl.Create(dir, scaffold.Data{
		Name:        "my-analysis",
		Module:      "my_analysis",
		Version:     "0.1.0",
		Description: "An analysis",
		Author:      "Jane Doe",
		Email:       "jane@example.com",
		License:     "MIT",
	})
	require.NoError(t, err)
	assert.Contains(t, written, filepath.Join("notebooks", "01_exploratory.ipynb"))
	assert.Contains(t, written, filepath.Join("data", "raw", ".gitkeep"))

	proj, err := project.Load(dir)
	require.NoError(t, err)
	deps, err := proj.Requirements()
	require.NoError(t, err)
	depNames := make([]string, 0, len(deps))
	for _, dep := range deps {
		depNames = append(depNames, dep.Name)
	}
	assert.Contains(t, depNames, "pandas")
	assert.Contains(t, depNames, "scikit-learn")
}

func TestCreateRefusesExistingProject(t *testing.T) {
	t.Parallel()
	tpl, err := scaffold.Get("basic")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyproject.toml"), []byte("[project]\n"), 0o644))

	_, err = tpl.Create(dir, scaffold.Data{Name: "x", Module: "x", Version: "0.1.0"})
	assert.Error(t, err)
}
