package main

import (
	"path/filepath"

	"github.com/Nsfr750/pack/pkg/config"
	"github.com/Nsfr750/pack/pkg/project"
	"github.com/Nsfr750/pack/pkg/python/pyenv"
)

// loadConfig reads the user configuration, falling back to defaults when the
// file does not exist yet.
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// interpreter resolves the Python interpreter for a command: the --python
// flag wins, then the python_path configuration key, then $PATH.
func interpreter(cfg *config.Config) (*pyenv.Interpreter, error) {
	override := rootFlags.Python
	if override == "" {
		override = cfg.PythonPath
	}
	return pyenv.Find(override)
}

// projectDir turns an optional positional DIR argument into an absolute
// project directory, defaulting to the working directory.
func projectDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	return filepath.Abs(dir)
}

// loadProject is projectDir plus metadata loading, the common prefix of the
// project-oriented commands.
func loadProject(args []string) (*project.Project, error) {
	dir, err := projectDir(args)
	if err != nil {
		return nil, err
	}
	return project.Load(dir)
}
