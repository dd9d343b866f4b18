package pip_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/pip"
)

func TestParseListOutput(t *testing.T) {
	t.Parallel()
	const output = `[{"name": "Flask", "version": "1.1.2"}, {"name": "zope.interface", "version": "5.4.0"}]`

	installed, err := pip.ParseListOutput([]byte(output))
	require.NoError(t, err)
	require.Len(t, installed, 2)

	flask, ok := installed["flask"]
	require.True(t, ok, "keys are normalized names")
	assert.Equal(t, "Flask", flask.Name)
	ver, err := flask.ParsedVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.1.2", ver.String())

	_, ok = installed["zope-interface"]
	assert.True(t, ok)
}

func TestParseListOutputInvalid(t *testing.T) {
	t.Parallel()
	_, err := pip.ParseListOutput([]byte("WARNING: not json"))
	assert.Error(t, err)
}

func TestParseShowOutput(t *testing.T) {
	t.Parallel()
	const output = `Name: requests
Version: 2.25.1
Summary: Python HTTP for Humans.
Home-page: https://requests.readthedocs.io
Author: Kenneth Reitz
Author-email: me@kennethreitz.org
License: Apache 2.0
Location: /usr/lib/python3/dist-packages
Requires: certifi, chardet, idna, urllib3
Required-by: twine
`

	md, err := pip.ParseShowOutput([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, "requests", md.Name)
	assert.Equal(t, "2.25.1", md.Version)
	assert.Equal(t, "Apache 2.0", md.License)
	assert.Equal(t, []string{"certifi", "chardet", "idna", "urllib3"}, md.Requires)
	assert.Equal(t, []string{"twine"}, md.RequiredBy)
}

func TestParseShowOutputEmptyRequires(t *testing.T) {
	t.Parallel()
	const output = `Name: six
Version: 1.16.0
Requires:
Required-by: packaging
`
	md, err := pip.ParseShowOutput([]byte(output))
	require.NoError(t, err)
	assert.Nil(t, md.Requires)
	assert.Equal(t, []string{"packaging"}, md.RequiredBy)
}

func TestParseShowOutputNotFound(t *testing.T) {
	t.Parallel()
	_, err := pip.ParseShowOutput([]byte("WARNING: Package(s) not found: nosuchpkg\n"))
	assert.Error(t, err)
}
