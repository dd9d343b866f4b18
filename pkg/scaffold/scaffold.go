// Package scaffold creates new Python package projects from built-in
// templates.  The templates live in an embedded manifest; each file's path
// and content are rendered with text/template.
package scaffold

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"gopkg.in/yaml.v2"
)

//go:embed templates.yaml
var manifestYAML []byte

type manifest struct {
	Templates []Template `yaml:"templates"`
}

type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Files       []File `yaml:"files"`
}

type File struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Data is what the templates may reference.
type Data struct {
	// Name is the distribution name ("my-pkg"); Module the importable
	// package directory derived from it ("my_pkg").
	Name        string
	Module      string
	Version     string
	Description string
	Author      string
	Email       string
	License     string
}

var registry = func() map[string]Template {
	var m manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		panic(fmt.Errorf("scaffold: embedded manifest: %w", err))
	}
	ret := make(map[string]Template, len(m.Templates))
	for _, tpl := range m.Templates {
		ret[tpl.Name] = tpl
	}
	return ret
}()

// List returns the available templates sorted by name.
func List() []Template {
	ret := make([]Template, 0, len(registry))
	for _, tpl := range registry {
		ret = append(ret, tpl)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// Get looks a template up by name.
func Get(name string) (*Template, error) {
	tpl, ok := registry[name]
	if !ok {
		names := make([]string, 0, len(registry))
		for name := range registry {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("scaffold: no such template %q (have: %s)",
			name, strings.Join(names, ", "))
	}
	return &tpl, nil
}

// Create renders the template into dir and returns the paths written,
// relative to dir.  A directory that already contains project metadata is
// refused rather than overwritten.
func (tpl *Template) Create(dir string, data Data) ([]string, error) {
	for _, probe := range []string{"pyproject.toml", "setup.py"} {
		if _, err := os.Stat(filepath.Join(dir, probe)); err == nil {
			return nil, fmt.Errorf("scaffold: %s already has a %s; refusing to overwrite", dir, probe)
		}
	}

	var written []string
	for _, file := range tpl.Files {
		relPath, err := render("path", file.Path, data)
		if err != nil {
			return nil, err
		}
		content, err := render(relPath, file.Content, data)
		if err != nil {
			return nil, err
		}
		absPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
			return nil, err
		}
		if err := os.WriteFile(absPath, []byte(content), 0o644); err != nil {
			return nil, err
		}
		written = append(written, relPath)
	}
	return written, nil
}

func render(name, text string, data Data) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("scaffold: template %s: %w", name, err)
	}
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("scaffold: template %s: %w", name, err)
	}
	return buf.String(), nil
}
