package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// Credentials is what a .pypirc section (or the TWINE_* environment) yields
// for a repository.
type Credentials struct {
	Username string
	Password string
	// URL is the upload endpoint, when the section overrides it.
	URL string
}

// PypircPath returns the conventional ~/.pypirc location.
func PypircPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".pypirc"), nil
}

// LoadPypirc reads credentials for the named repository section from a
// .pypirc file.  A missing file is not an error; it behaves like a file with
// no matching section.
func LoadPypirc(path, repoName string) (*Credentials, error) {
	file, err := ini.LoadSources(ini.LoadOptions{Loose: true, AllowPythonMultilineValues: true}, path)
	if err != nil {
		return nil, fmt.Errorf("publish: %s: %w", path, err)
	}
	sec, err := file.GetSection(repoName)
	if err != nil {
		return nil, nil
	}
	return &Credentials{
		Username: sec.Key("username").String(),
		Password: sec.Key("password").String(),
		URL:      sec.Key("repository").String(),
	}, nil
}

// ResolveCredentials layers the credential sources the way twine does:
// explicit values win, then TWINE_USERNAME/TWINE_PASSWORD, then the .pypirc
// section named after the repository.
func ResolveCredentials(explicit Credentials, repoName string) (*Credentials, error) {
	creds := explicit
	if creds.Username == "" {
		creds.Username = os.Getenv("TWINE_USERNAME")
	}
	if creds.Password == "" {
		creds.Password = os.Getenv("TWINE_PASSWORD")
	}
	if creds.Username == "" || creds.Password == "" {
		path, err := PypircPath()
		if err != nil {
			return nil, err
		}
		fromFile, err := LoadPypirc(path, repoName)
		if err != nil {
			return nil, err
		}
		if fromFile != nil {
			if creds.Username == "" {
				creds.Username = fromFile.Username
			}
			if creds.Password == "" {
				creds.Password = fromFile.Password
			}
			if creds.URL == "" {
				creds.URL = fromFile.URL
			}
		}
	}
	if creds.Username == "" && creds.Password != "" {
		// API tokens use the fixed __token__ username.
		creds.Username = "__token__"
	}
	if creds.Password == "" {
		return nil, errors.New("publish: no credentials found; set TWINE_USERNAME/TWINE_PASSWORD or add a .pypirc section")
	}
	return &creds, nil
}
