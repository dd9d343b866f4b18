package publish_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/publish"
)

const samplePypirc = `[distutils]
index-servers =
    pypi
    internal

[pypi]
username = __token__
password = pypi-AgEIcHlwaS5vcmc

[internal]
repository = https://pypi.example.com/legacy/
username = jane
password = hunter2
`

func writePypirc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pypirc")
	require.NoError(t, os.WriteFile(path, []byte(samplePypirc), 0o600))
	return path
}

func TestLoadPypirc(t *testing.T) {
	t.Parallel()
	path := writePypirc(t)

	creds, err := publish.LoadPypirc(path, "internal")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "jane", creds.Username)
	assert.Equal(t, "hunter2", creds.Password)
	assert.Equal(t, "https://pypi.example.com/legacy/", creds.URL)

	creds, err = publish.LoadPypirc(path, "pypi")
	require.NoError(t, err)
	require.NotNil(t, creds)
	assert.Equal(t, "__token__", creds.Username)
	assert.Empty(t, creds.URL)
}

func TestLoadPypircMissingSection(t *testing.T) {
	t.Parallel()
	creds, err := publish.LoadPypirc(writePypirc(t), "no-such-repo")
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestLoadPypircMissingFile(t *testing.T) {
	t.Parallel()
	creds, err := publish.LoadPypirc(filepath.Join(t.TempDir(), ".pypirc"), "pypi")
	require.NoError(t, err)
	assert.Nil(t, creds)
}

func TestResolveCredentialsEnv(t *testing.T) {
	t.Setenv("TWINE_USERNAME", "envuser")
	t.Setenv("TWINE_PASSWORD", "envpass")

	creds, err := publish.ResolveCredentials(publish.Credentials{}, "pypi")
	require.NoError(t, err)
	assert.Equal(t, "envuser", creds.Username)
	assert.Equal(t, "envpass", creds.Password)
}

func TestResolveCredentialsTokenUsername(t *testing.T) {
	t.Setenv("TWINE_USERNAME", "")
	t.Setenv("TWINE_PASSWORD", "pypi-token")
	t.Setenv("HOME", t.TempDir()) // no .pypirc

	creds, err := publish.ResolveCredentials(publish.Credentials{}, "pypi")
	require.NoError(t, err)
	assert.Equal(t, "__token__", creds.Username)
}

func TestResolveCredentialsExplicitWins(t *testing.T) {
	t.Setenv("TWINE_USERNAME", "envuser")
	t.Setenv("TWINE_PASSWORD", "envpass")

	creds, err := publish.ResolveCredentials(publish.Credentials{Username: "cli", Password: "clipass"}, "pypi")
	require.NoError(t, err)
	assert.Equal(t, "cli", creds.Username)
	assert.Equal(t, "clipass", creds.Password)
}
