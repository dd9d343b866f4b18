package dist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/python/dist"
)

func TestParseFilename(t *testing.T) {
	t.Parallel()
	type testcase struct {
		Filename string
		Kind     dist.Kind
		Name     string
		Version  string
	}
	testcases := map[string]testcase{
		"pure-wheel": {
			"Flask-1.1.2-py2.py3-none-any.whl",
			dist.KindWheel, "Flask", "1.1.2",
		},
		"platform-wheel": {
			"numpy-1.21.4-cp39-cp39-manylinux_2_12_x86_64.whl",
			dist.KindWheel, "numpy", "1.21.4",
		},
		"build-tag-wheel": {
			"example-0.1.0-2abc-py3-none-any.whl",
			dist.KindWheel, "example", "0.1.0",
		},
		"sdist-targz": {
			"requests-2.25.1.tar.gz",
			dist.KindSdist, "requests", "2.25.1",
		},
		"sdist-hyphenated-name": {
			"python-dateutil-2.8.1.tar.gz",
			dist.KindSdist, "python-dateutil", "2.8.1",
		},
		"sdist-zip": {
			"od-1.0.zip",
			dist.KindSdist, "od", "1.0",
		},
	}
	for tcName, tc := range testcases {
		tc := tc
		t.Run(tcName, func(t *testing.T) {
			t.Parallel()
			art, err := dist.ParseFilename(tc.Filename)
			require.NoError(t, err)
			assert.Equal(t, tc.Kind, art.Kind)
			assert.Equal(t, tc.Name, art.Name)
			assert.Equal(t, tc.Version, art.Version.String())
		})
	}
}

func TestParseFilenameWheelTags(t *testing.T) {
	t.Parallel()
	art, err := dist.ParseFilename("numpy-1.21.4-cp39-cp39-manylinux_2_12_x86_64.whl")
	require.NoError(t, err)
	assert.Equal(t, "cp39", art.Python)
	assert.Equal(t, "cp39", art.ABI)
	assert.Equal(t, "manylinux_2_12_x86_64", art.Platform)
	assert.Nil(t, art.BuildTag)

	art, err = dist.ParseFilename("example-0.1.0-2abc-py3-none-any.whl")
	require.NoError(t, err)
	require.NotNil(t, art.BuildTag)
	assert.Equal(t, "2abc", art.BuildTag.String())
}

func TestParseFilenameInvalid(t *testing.T) {
	t.Parallel()
	for _, filename := range []string{
		"notanartifact.txt",
		"missing-parts.whl",
		"noversion.tar.gz",
		"pkg-bogusversion.tar.gz",
	} {
		filename := filename
		t.Run(filename, func(t *testing.T) {
			t.Parallel()
			_, err := dist.ParseFilename(filename)
			assert.Error(t, err)
		})
	}
}
