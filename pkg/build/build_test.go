package build_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/datawire/dlib/dlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/build"
	"github.com/Nsfr750/pack/pkg/python/dist"
)

func TestArtifacts(t *testing.T) {
	t.Parallel()
	ctx := dlog.NewTestContext(t, false)

	dir := t.TempDir()
	for _, name := range []string{
		"my_pkg-1.2.0.tar.gz",
		"my_pkg-1.2.0-py3-none-any.whl",
		"README.txt", // not an artifact
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	artifacts, err := build.Artifacts(ctx, dir)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	kinds := make(map[dist.Kind]dist.Artifact, 2)
	for _, a := range artifacts {
		kinds[a.Kind] = a
	}
	require.Contains(t, kinds, dist.KindSdist)
	require.Contains(t, kinds, dist.KindWheel)
	assert.Equal(t, "my_pkg", kinds[dist.KindSdist].Name)
	assert.Equal(t, "1.2.0", kinds[dist.KindSdist].Version.String())
	assert.Equal(t, filepath.Join(dir, "my_pkg-1.2.0-py3-none-any.whl"), kinds[dist.KindWheel].Filename)
}

func TestArtifactsMissingDir(t *testing.T) {
	t.Parallel()
	_, err := build.Artifacts(dlog.NewTestContext(t, false), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
