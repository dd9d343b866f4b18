package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nsfr750/pack/pkg/project"
	"github.com/Nsfr750/pack/pkg/python/dist"
	"github.com/Nsfr750/pack/pkg/python/pep440"
)

func TestCurrentArtifacts(t *testing.T) {
	t.Parallel()
	artifacts := []dist.Artifact{
		{Filename: "my_pkg-1.0.0.tar.gz", Version: pep440.MustParse("1.0.0")},
		{Filename: "my_pkg-1.1.0.tar.gz", Version: pep440.MustParse("1.1.0")},
		{Filename: "my_pkg-1.1.0-py3-none-any.whl", Version: pep440.MustParse("1.1.0")},
	}

	proj := &project.Project{Name: "my-pkg", Version: "1.1.0"}
	got := currentArtifacts(proj, artifacts)
	require.Len(t, got, 2)
	assert.Equal(t, "my_pkg-1.1.0.tar.gz", got[0].Filename)
	assert.Equal(t, "my_pkg-1.1.0-py3-none-any.whl", got[1].Filename)

	// Dynamic versioning: no declared version to filter on.
	dynamic := &project.Project{Name: "my-pkg"}
	assert.Len(t, currentArtifacts(dynamic, artifacts), 3)
}
