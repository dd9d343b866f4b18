// Package repos manages named package repositories: where uploads go and
// where the index client looks.  The set is persisted as JSON next to the
// user config; the "pypi" entry always exists and cannot be removed.
package repos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nsfr750/pack/pkg/config"
)

const (
	// PyPIName is the guaranteed repository entry.
	PyPIName = "pypi"

	PyPIUploadURL = "https://upload.pypi.org/legacy/"
	PyPISimpleURL = "https://pypi.org/simple/"
)

type Repository struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	// Password is populated from the environment or .pypirc at use time;
	// it is never written to the repositories file.
	Password  string `json:"-"`
	IsDefault bool   `json:"is_default"`
}

// AuthURL returns the repository URL with userinfo spliced in when
// credentials are present.
func (repo Repository) AuthURL() (string, error) {
	if repo.Username == "" {
		return repo.URL, nil
	}
	u, err := url.Parse(repo.URL)
	if err != nil {
		return "", fmt.Errorf("repos: %q: %w", repo.Name, err)
	}
	if repo.Password != "" {
		u.User = url.UserPassword(repo.Username, repo.Password)
	} else {
		u.User = url.User(repo.Username)
	}
	return u.String(), nil
}

// SimpleURL guesses the repository's PEP 503 simple-API root.  For pypi the
// upload and index endpoints are distinct hosts; for private indexes the
// common layout is a "/simple/" path next to the upload endpoint.
func (repo Repository) SimpleURL() string {
	if repo.Name == PyPIName {
		return PyPISimpleURL
	}
	if strings.Contains(repo.URL, "/simple") {
		return repo.URL
	}
	return strings.TrimSuffix(repo.URL, "/") + "/simple/"
}

var (
	ErrNotFound  = errors.New("repository not found")
	ErrProtected = errors.New("the pypi repository cannot be removed")
)

// Manager holds the repository set and its backing file.
type Manager struct {
	path  string
	repos map[string]*Repository
}

// Open loads the repository set from the default location.
func Open() (*Manager, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return OpenFile(filepath.Join(dir, "repositories.json"))
}

func OpenFile(path string) (*Manager, error) {
	mgr := &Manager{
		path:  path,
		repos: make(map[string]*Repository),
	}
	bs, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// first run
	case err != nil:
		return nil, err
	default:
		if err := json.Unmarshal(bs, &mgr.repos); err != nil {
			return nil, fmt.Errorf("repos: %s: %w", path, err)
		}
		for name, repo := range mgr.repos {
			repo.Name = name
		}
	}
	if _, ok := mgr.repos[PyPIName]; !ok {
		mgr.repos[PyPIName] = &Repository{
			Name:      PyPIName,
			URL:       PyPIUploadURL,
			IsDefault: !mgr.haveDefault(),
		}
	}
	return mgr, nil
}

func (mgr *Manager) haveDefault() bool {
	for _, repo := range mgr.repos {
		if repo.IsDefault {
			return true
		}
	}
	return false
}

func (mgr *Manager) save() error {
	bs, err := json.MarshalIndent(mgr.repos, "", "  ")
	if err != nil {
		return err
	}
	return config.WriteFileAtomic(mgr.path, append(bs, '\n'), 0o600)
}

// Add inserts or replaces a repository and persists the set.
func (mgr *Manager) Add(repo Repository) error {
	if repo.Name == "" || repo.URL == "" {
		return fmt.Errorf("repos: a repository needs both a name and a URL")
	}
	if _, err := url.Parse(repo.URL); err != nil {
		return fmt.Errorf("repos: %q: %w", repo.Name, err)
	}
	if repo.IsDefault {
		for _, other := range mgr.repos {
			other.IsDefault = false
		}
	}
	stored := repo
	mgr.repos[repo.Name] = &stored
	return mgr.save()
}

// Remove deletes a repository by name; removing "pypi" is refused.
func (mgr *Manager) Remove(name string) error {
	if name == PyPIName {
		return ErrProtected
	}
	repo, ok := mgr.repos[name]
	if !ok {
		return fmt.Errorf("repos: %w: %q", ErrNotFound, name)
	}
	delete(mgr.repos, name)
	if repo.IsDefault {
		mgr.repos[PyPIName].IsDefault = true
	}
	return mgr.save()
}

// Get returns a repository by name.
func (mgr *Manager) Get(name string) (*Repository, error) {
	repo, ok := mgr.repos[name]
	if !ok {
		return nil, fmt.Errorf("repos: %w: %q", ErrNotFound, name)
	}
	ret := *repo
	return &ret, nil
}

// Default returns the default repository, falling back to pypi.
func (mgr *Manager) Default() *Repository {
	for _, repo := range mgr.repos {
		if repo.IsDefault {
			ret := *repo
			return &ret
		}
	}
	ret := *mgr.repos[PyPIName]
	return &ret
}

// SetDefault marks one repository as the default and persists the set.
func (mgr *Manager) SetDefault(name string) error {
	if _, ok := mgr.repos[name]; !ok {
		return fmt.Errorf("repos: %w: %q", ErrNotFound, name)
	}
	for _, repo := range mgr.repos {
		repo.IsDefault = repo.Name == name
	}
	return mgr.save()
}

// List returns the repositories sorted by name.
func (mgr *Manager) List() []Repository {
	ret := make([]Repository, 0, len(mgr.repos))
	for _, repo := range mgr.repos {
		ret = append(ret, *repo)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}
